package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-prims/common"
)

// Camera defines the interface for an orbit/pan/zoom camera.
// Every mutator recomputes the affected transform before returning, so the matrices read by the
// renderer are never stale.
type Camera interface {
	Transform

	// Orbit rotates the eye around the target.
	//
	// Parameters:
	//   - dx, dy: the pointer delta in pixels
	Orbit(dx, dy float32)

	// Pan moves the target along the camera's local right and up axes, scaled by the orbit distance.
	// Dragging right moves the target left in view space.
	//
	// Parameters:
	//   - dx, dy: the pointer delta in pixels
	Pan(dx, dy float32)

	// Zoom moves the eye toward the target by scroll*zoomSpeed. A zero scroll is an exact no-op.
	//
	// Parameters:
	//   - scroll: the signed scroll amount
	Zoom(scroll float32)

	// UpdateAspect recomputes the projection for a new viewport size.
	// A zero width or height gives an aspect of 1.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	UpdateAspect(width, height int)

	// ViewProjection returns projection * view.
	//
	// Returns:
	//   - [16]float32: the combined matrix (column-major)
	ViewProjection() [16]float32

	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - [3]float32: the target position
	Target() [3]float32

	// Distance returns the current orbit distance, always within the configured bounds.
	//
	// Returns:
	//   - float32: the distance from eye to target
	Distance() float32

	// Eye returns the world-space eye position.
	//
	// Returns:
	//   - [3]float32: the eye position
	Eye() [3]float32

	// Aspect returns the aspect ratio used by the projection.
	//
	// Returns:
	//   - float32: width / height
	Aspect() float32
}

// rig holds the state shared by both camera variants: the target, the clamped orbit distance,
// the input speeds and the two matrices. Every method expects the caller to hold mu unless it
// locks itself.
type rig struct {
	mu *sync.Mutex

	target      [3]float32
	eye         [3]float32
	distance    float32
	distanceMin float32
	distanceMax float32

	mouseSpeed float32
	zoomSpeed  float32
	panSpeed   float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       [16]float32
	projectionMatrix [16]float32
}

func newRig(cfg cameraConfig) rig {
	r := rig{
		mu:          &sync.Mutex{},
		target:      cfg.target,
		distance:    cfg.distance,
		distanceMin: cfg.distanceMin,
		distanceMax: cfg.distanceMax,
		mouseSpeed:  cfg.mouseSpeed,
		zoomSpeed:   cfg.zoomSpeed,
		panSpeed:    cfg.panSpeed,
		fov:         cfg.fov,
		aspect:      cfg.aspect,
		near:        cfg.near,
		far:         cfg.far,
	}
	common.Identity(r.viewMatrix[:])
	r.updateProjection()
	return r
}

// clampDistance keeps distance within [distanceMin, distanceMax].
func (r *rig) clampDistance() {
	r.distance = min(max(r.distance, r.distanceMin), r.distanceMax)
}

// applyZoom changes the distance and reports whether a view update is needed.
func (r *rig) applyZoom(scroll float32) bool {
	if scroll == 0 {
		return false
	}
	r.distance -= scroll * r.zoomSpeed
	return true
}

// applyPan moves the target against the right axis and along the up axis.
func (r *rig) applyPan(right, up [3]float32, dx, dy float32) {
	panDistance := r.distance * r.panSpeed
	for i := range 3 {
		r.target[i] -= (right[i]*dx - up[i]*dy) * panDistance
	}
}

func (r *rig) updateProjection() {
	common.Perspective(r.projectionMatrix[:], r.fov, r.aspect, r.near, r.far)
}

func (r *rig) lookAt(eye, up [3]float32) {
	r.eye = eye
	common.LookAt(r.viewMatrix[:], eye, r.target, up)
}

func (r *rig) ViewMatrix() [16]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewMatrix
}

func (r *rig) ProjectionMatrix() [16]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projectionMatrix
}

func (r *rig) SetViewMatrix(m [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewMatrix = m
}

func (r *rig) SetProjectionMatrix(m [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projectionMatrix = m
}

func (r *rig) UpdateAspect(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == 0 || height == 0 {
		r.aspect = 1
	} else {
		r.aspect = float32(width) / float32(height)
	}
	r.updateProjection()
}

func (r *rig) ViewProjection() [16]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out [16]float32
	common.Mul4(out[:], r.projectionMatrix[:], r.viewMatrix[:])
	return out
}

func (r *rig) Target() [3]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *rig) Distance() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distance
}

func (r *rig) Eye() [3]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eye
}

func (r *rig) Aspect() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aspect
}
