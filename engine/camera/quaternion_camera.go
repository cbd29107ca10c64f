package camera

import (
	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/chewxy/math32"
)

var (
	axisX = [3]float32{1, 0, 0}
	axisZ = [3]float32{0, 0, 1}
)

// quaternionCamera orbits its target using a unit orientation quaternion.
// The eye sits at orientation*(0,-distance,0) from the target and the camera up is orientation*(0,0,1),
// so there is no pitch clamp and no pole degeneracy.
type quaternionCamera struct {
	rig

	orientation common.Quat
}

var _ Camera = &quaternionCamera{}

// NewQuaternionCamera creates a Camera whose rotation is stored as a unit quaternion.
// Without WithOrientation the orientation is derived from the yaw and pitch options so the default
// eye position matches NewEulerCamera.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewQuaternionCamera(options ...CameraBuilderOption) Camera {
	cfg := newCameraConfig(options)
	c := &quaternionCamera{
		rig:         newRig(cfg),
		orientation: orientationFromAngles(cfg.yaw, cfg.pitch),
	}
	if cfg.orientation != nil {
		c.orientation = *cfg.orientation
	}
	c.update()
	return c
}

// orientationFromAngles maps a yaw/pitch pair onto the quaternion frame whose -Y axis points at the eye.
func orientationFromAngles(yaw, pitch float32) common.Quat {
	qz := common.QuatFromAxisAngle(axisZ, yaw+math32.Pi/2)
	qx := common.QuatFromAxisAngle(axisX, -pitch)
	return qz.Mul(qx).Normalize()
}

// update clamps distance and rebuilds the view matrix from the orientation.
// Caller must hold the mutex.
func (c *quaternionCamera) update() {
	c.clampDistance()
	offset := c.orientation.Rotate([3]float32{0, -c.distance, 0})
	up := c.orientation.Rotate(axisZ)
	c.lookAt(common.Add3(c.target, offset), up)
}

func (c *quaternionCamera) Orbit(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	yaw := common.QuatFromAxisAngle(axisZ, -dx*c.mouseSpeed)
	pitch := common.QuatFromAxisAngle(c.orientation.Rotate(axisX), -dy*c.mouseSpeed)
	c.orientation = yaw.Mul(pitch).Mul(c.orientation).Normalize()
	c.update()
}

func (c *quaternionCamera) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	right := c.orientation.Rotate(axisX)
	up := c.orientation.Rotate(axisZ)
	c.applyPan(right, up, dx, dy)
	c.update()
}

func (c *quaternionCamera) Zoom(scroll float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applyZoom(scroll) {
		return
	}
	c.update()
}

// Orientation returns the current unit orientation.
func (c *quaternionCamera) Orientation() common.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}
