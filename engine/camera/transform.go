package camera

import "github.com/Carmen-Shannon/oxy-prims/common"

// Transform is the capability set shared by every camera: a view transform (world to camera) and a
// projection transform (camera to clip), both 4x4 column-major.
type Transform interface {
	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	ProjectionMatrix() [16]float32

	// SetViewMatrix replaces the view matrix.
	// Controllers re-derive it on their next mutation.
	//
	// Parameters:
	//   - m: the new view matrix (column-major)
	SetViewMatrix(m [16]float32)

	// SetProjectionMatrix replaces the projection matrix.
	//
	// Parameters:
	//   - m: the new projection matrix (column-major)
	SetProjectionMatrix(m [16]float32)
}

// AffineTransform is a view transform narrowed to a rotation/scale block and a translation.
type AffineTransform struct {
	Matrix3     common.Mat3
	Translation [3]float32
}

// SetRotation replaces the xyz of the three rotation columns of the view matrix.
// The w components and the translation column are preserved.
//
// Parameters:
//   - t: the transform to modify
//   - rotation: the new column-major rotation block
func SetRotation(t Transform, rotation common.Mat3) {
	view := t.ViewMatrix()
	for col := range 3 {
		c := rotation.Column(col)
		copy(view[col*4:col*4+3], c[:])
	}
	t.SetViewMatrix(view)
}

// SetPosition replaces the xyz of the translation column of the view matrix.
//
// Parameters:
//   - t: the transform to modify
//   - position: the new translation
func SetPosition(t Transform, position [3]float32) {
	view := t.ViewMatrix()
	copy(view[12:15], position[:])
	t.SetViewMatrix(view)
}

// SetFocalDistance rescales the projection's x and y focal terms so y becomes distance,
// keeping the existing ratio between the x and y terms.
//
// Parameters:
//   - t: the transform to modify
//   - distance: the new y focal scale
func SetFocalDistance(t Transform, distance float32) {
	proj := t.ProjectionMatrix()
	aspectFocal := proj[0]
	focal := proj[5]
	proj[0] = aspectFocal / focal * distance
	proj[5] = distance
	t.SetProjectionMatrix(proj)
}

// Affine returns the view matrix without its projective row.
//
// Parameters:
//   - t: the transform to read
//
// Returns:
//   - AffineTransform: the 3x3 block and translation of the view matrix
func Affine(t Transform) AffineTransform {
	view := t.ViewMatrix()
	return AffineTransform{
		Matrix3: common.Mat3{
			view[0], view[1], view[2],
			view[4], view[5], view[6],
			view[8], view[9], view[10],
		},
		Translation: [3]float32{view[12], view[13], view[14]},
	}
}
