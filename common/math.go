package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 column-major matrices (out = a * b).
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix
//   - b: right-hand matrix
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Scaling writes a column-major scale matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - sx, sy, sz: scale factors along each axis
func Scaling(out []float32, sx, sy, sz float32) {
	Identity(out)
	out[0], out[5], out[10] = sx, sy, sz
}

// Perspective builds a right-handed perspective projection with WebGPU's [0, 1] depth range.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport width divided by height
//   - near: distance to the near clip plane
//   - far: distance to the far clip plane
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt builds a right-handed view matrix looking from eye towards target.
// When eye == target the view looks down -Z. When up is parallel to the view direction another
// world axis stands in for up, so the rotation block stays orthonormal.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - target: the point being looked at
//   - up: the world up direction
func LookAt(out []float32, eye, target, up [3]float32) {
	z := Sub3(eye, target)
	if Dot3(z, z) == 0 {
		z = [3]float32{0, 0, 1}
	}
	z = Normalize3(z)

	x := Cross3(up, z)
	if Dot3(x, x) < 1e-12 {
		alt := [3]float32{0, 0, 1}
		if math32.Abs(z[2]) > 0.9 {
			alt = [3]float32{1, 0, 0}
		}
		x = Cross3(alt, z)
	}
	x = Normalize3(x)
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// ScaleRotationTranslation composes M = T * R * S into out, the same layout used by per-instance model matrices.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - scale: per-axis scale factors
//   - rotation: a unit quaternion
//   - translation: the world-space translation
func ScaleRotationTranslation(out []float32, scale [3]float32, rotation Quat, translation [3]float32) {
	r := rotation.Mat3()
	for col := 0; col < 3; col++ {
		out[col*4+0] = r[col*3+0] * scale[col]
		out[col*4+1] = r[col*3+1] * scale[col]
		out[col*4+2] = r[col*3+2] * scale[col]
		out[col*4+3] = 0
	}
	out[12], out[13], out[14], out[15] = translation[0], translation[1], translation[2], 1
}

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v scaled by s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the right-handed cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the euclidean length of v.
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the unit-length vector, or v if its length is zero
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return Scale3(v, 1/l)
}
