package common

import (
	"github.com/chewxy/math32"
)

// Mat3 is a 3x3 matrix stored in column-major order.
// Columns are m[0:3], m[3:6] and m[6:9].
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Column returns the i-th column of the matrix.
//
// Parameters:
//   - i: the column index (0, 1 or 2)
//
// Returns:
//   - [3]float32: the column vector
func (m Mat3) Column(i int) [3]float32 {
	return [3]float32{m[i*3], m[i*3+1], m[i*3+2]}
}

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float32

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a rotation of angle radians about axis.
// The axis is normalized before use.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the rotation angle in radians (right-hand rule)
//
// Returns:
//   - Quat: the unit quaternion for the rotation
func QuatFromAxisAngle(axis [3]float32, angle float32) Quat {
	a := Normalize3(axis)
	s, c := math32.Sincos(angle * 0.5)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// QuatFromMat3 converts a pure rotation matrix into a unit quaternion.
// The branch on the largest diagonal term keeps the square root well conditioned.
//
// Parameters:
//   - m: a column-major rotation matrix
//
// Returns:
//   - Quat: the normalized quaternion representing m
func QuatFromMat3(m Mat3) Quat {
	m00, m01, m02 := m[0], m[1], m[2]
	m10, m11, m12 := m[3], m[4], m[5]
	m20, m21, m22 := m[6], m[7], m[8]

	var q Quat
	if m22 <= 0 {
		dif10 := m11 - m00
		omm22 := 1 - m22
		if dif10 <= 0 {
			fourXSq := omm22 - dif10
			inv := 0.5 / math32.Sqrt(fourXSq)
			q = Quat{fourXSq * inv, (m01 + m10) * inv, (m02 + m20) * inv, (m12 - m21) * inv}
		} else {
			fourYSq := omm22 + dif10
			inv := 0.5 / math32.Sqrt(fourYSq)
			q = Quat{(m01 + m10) * inv, fourYSq * inv, (m12 + m21) * inv, (m20 - m02) * inv}
		}
	} else {
		sum10 := m11 + m00
		opm22 := 1 + m22
		if sum10 <= 0 {
			fourZSq := opm22 - sum10
			inv := 0.5 / math32.Sqrt(fourZSq)
			q = Quat{(m02 + m20) * inv, (m12 + m21) * inv, fourZSq * inv, (m01 - m10) * inv}
		} else {
			fourWSq := opm22 + sum10
			inv := 0.5 / math32.Sqrt(fourWSq)
			q = Quat{(m12 - m21) * inv, (m20 - m02) * inv, (m01 - m10) * inv, fourWSq * inv}
		}
	}
	return q.Normalize()
}

// Mul returns the Hamilton product q * r, which applies r first and then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q[3]*r[0] + q[0]*r[3] + q[1]*r[2] - q[2]*r[1],
		q[3]*r[1] - q[0]*r[2] + q[1]*r[3] + q[2]*r[0],
		q[3]*r[2] + q[0]*r[1] - q[1]*r[0] + q[2]*r[3],
		q[3]*r[3] - q[0]*r[0] - q[1]*r[1] - q[2]*r[2],
	}
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// Rotate applies the rotation q to v.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func (q Quat) Rotate(v [3]float32) [3]float32 {
	u := [3]float32{q[0], q[1], q[2]}
	t := Scale3(Cross3(u, v), 2)
	return Add3(Add3(v, Scale3(t, q[3])), Cross3(u, t))
}

// Mat3 converts the quaternion into a column-major rotation matrix.
func (q Quat) Mat3() Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat3{
		1 - (yy + zz), xy + wz, xz - wy,
		xy - wz, 1 - (xx + zz), yz + wx,
		xz + wy, yz - wx, 1 - (xx + yy),
	}
}
