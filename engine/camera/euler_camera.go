package camera

import (
	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/chewxy/math32"
)

// eulerCamera orbits its target using yaw and pitch angles with world up fixed at +Z.
type eulerCamera struct {
	rig

	yaw      float32
	pitch    float32
	pitchMin float32
	pitchMax float32
}

var _ Camera = &eulerCamera{}

// NewEulerCamera creates a Camera whose rotation is stored as yaw and pitch angles.
// Pitch is clamped to the configured bounds, which keeps the look-at away from the poles.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewEulerCamera(options ...CameraBuilderOption) Camera {
	cfg := newCameraConfig(options)
	c := &eulerCamera{
		rig:      newRig(cfg),
		yaw:      cfg.yaw,
		pitch:    cfg.pitch,
		pitchMin: cfg.pitchMin,
		pitchMax: cfg.pitchMax,
	}
	c.update()
	return c
}

// forward returns the unit direction from the target to the eye.
func (c *eulerCamera) forward() [3]float32 {
	sinP, cosP := math32.Sincos(c.pitch)
	sinY, cosY := math32.Sincos(c.yaw)
	return [3]float32{cosP * cosY, cosP * sinY, sinP}
}

// update clamps distance and pitch and rebuilds the view matrix.
// Caller must hold the mutex.
func (c *eulerCamera) update() {
	c.clampDistance()
	c.pitch = min(max(c.pitch, c.pitchMin), c.pitchMax)

	fw := c.forward()
	eye := [3]float32{
		c.target[0] + fw[0]*c.distance,
		c.target[1] + fw[1]*c.distance,
		c.target[2] + fw[2]*c.distance,
	}
	c.lookAt(eye, [3]float32{0, 0, 1})
}

func (c *eulerCamera) Orbit(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw -= dx * c.mouseSpeed
	c.pitch += dy * c.mouseSpeed
	c.update()
}

func (c *eulerCamera) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sinY, cosY := math32.Sincos(c.yaw)
	right := [3]float32{-sinY, cosY, 0}
	fw := c.forward()
	up := common.Cross3(fw, right)
	c.applyPan(right, up, dx, dy)
	c.update()
}

func (c *eulerCamera) Zoom(scroll float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applyZoom(scroll) {
		return
	}
	c.update()
}

// Yaw returns the current yaw angle in radians.
func (c *eulerCamera) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

// Pitch returns the current, clamped pitch angle in radians.
func (c *eulerCamera) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}
