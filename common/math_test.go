package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual [3]float32) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := [3]float32{3, 4, 5}
	LookAt(view[:], eye, [3]float32{0, 0, 0}, [3]float32{0, 0, 1})

	// eye transforms to the origin of view space
	x := view[0]*eye[0] + view[4]*eye[1] + view[8]*eye[2] + view[12]
	y := view[1]*eye[0] + view[5]*eye[1] + view[9]*eye[2] + view[13]
	z := view[2]*eye[0] + view[6]*eye[1] + view[10]*eye[2] + view[14]
	assertVec3InDelta(t, [3]float32{0, 0, 0}, [3]float32{x, y, z})

	// rows of the rotation block are orthonormal
	right := [3]float32{view[0], view[4], view[8]}
	up := [3]float32{view[1], view[5], view[9]}
	back := [3]float32{view[2], view[6], view[10]}
	assert.InDelta(t, 1, Length3(right), tol)
	assert.InDelta(t, 1, Length3(up), tol)
	assert.InDelta(t, 0, Dot3(up, back), tol)
	assert.InDelta(t, 0, Dot3(right, back), tol)
}

func TestLookAtDegenerateInputsStayOrthonormal(t *testing.T) {
	tests := []struct {
		name            string
		eye, target, up [3]float32
	}{
		{"eye on target", [3]float32{1, 2, 3}, [3]float32{1, 2, 3}, [3]float32{0, 1, 0}},
		{"up along view", [3]float32{0, 10, 0}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0}},
		{"up along z view", [3]float32{0, 0, 10}, [3]float32{0, 0, 0}, [3]float32{0, 0, -1}},
		{"zero up", [3]float32{3, 4, 5}, [3]float32{0, 0, 0}, [3]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var view [16]float32
			LookAt(view[:], tt.eye, tt.target, tt.up)

			right := [3]float32{view[0], view[4], view[8]}
			up := [3]float32{view[1], view[5], view[9]}
			back := [3]float32{view[2], view[6], view[10]}
			assert.InDelta(t, 1, Length3(right), tol)
			assert.InDelta(t, 1, Length3(up), tol)
			assert.InDelta(t, 1, Length3(back), tol)
			assert.InDelta(t, 0, Dot3(right, back), tol)
			assert.InDelta(t, 0, Dot3(up, back), tol)
		})
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	near, far := float32(0.1), float32(1000)
	Perspective(proj[:], math32.Pi/3, 1, near, far)

	depth := func(d float32) float32 {
		clipZ := proj[10]*-d + proj[14]
		clipW := proj[11] * -d
		return clipZ / clipW
	}
	assert.InDelta(t, 0, depth(near), tol)
	assert.InDelta(t, 1, depth(far), 1e-4)
}

func TestQuatFromMat3RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
	}{
		{"identity", QuatIdentity()},
		{"z quarter turn", QuatFromAxisAngle([3]float32{0, 0, 1}, math32.Pi/2)},
		{"x half turn", QuatFromAxisAngle([3]float32{1, 0, 0}, math32.Pi)},
		{"oblique", QuatFromAxisAngle([3]float32{1, 2, 3}, 2.2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := QuatFromMat3(tt.q.Mat3())
			// q and -q encode the same rotation
			if back[3]*tt.q[3] < 0 {
				back = Quat{-back[0], -back[1], -back[2], -back[3]}
			}
			for i := range 4 {
				assert.InDelta(t, tt.q[i], back[i], tol)
			}
		})
	}
}

func TestQuatFromMat3IdentityIsExact(t *testing.T) {
	assert.Equal(t, QuatIdentity(), QuatFromMat3(Identity3()))
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle([3]float32{0, 0, 1}, math32.Pi/2)
	assertVec3InDelta(t, [3]float32{0, 1, 0}, q.Rotate([3]float32{1, 0, 0}))

	// composition applies the right-hand operand first
	qx := QuatFromAxisAngle([3]float32{1, 0, 0}, math32.Pi/2)
	assertVec3InDelta(t, [3]float32{0, -1, 0}, qx.Rotate([3]float32{0, 0, 1}))
	assertVec3InDelta(t, [3]float32{1, 0, 0}, q.Mul(qx).Rotate([3]float32{0, 0, 1}))
}

func TestScaleRotationTranslation(t *testing.T) {
	var m [16]float32
	ScaleRotationTranslation(m[:], [3]float32{0.1, 0.1, 0.1}, QuatIdentity(), [3]float32{4, 0, 0})

	assert.Equal(t, [16]float32{
		0.1, 0, 0, 0,
		0, 0.1, 0, 0,
		0, 0, 0.1, 0,
		4, 0, 0, 1,
	}, m)
}

func TestNormalize3Zero(t *testing.T) {
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
}
