package camera

import (
	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/chewxy/math32"
)

const (
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 1000
	DefaultAspect      float32 = 16.0 / 9.0
	DefaultFov         float32 = 60 * math32.Pi / 180
	DefaultDistance    float32 = 10
	DefaultDistanceMin float32 = 0.1
	DefaultDistanceMax float32 = 1000
	DefaultYaw         float32 = math32.Pi / 4
	DefaultPitch       float32 = math32.Pi / 4
	DefaultPitchMin    float32 = -math32.Pi/2 + 0.01
	DefaultPitchMax    float32 = math32.Pi/2 - 0.01
	DefaultMouseSpeed  float32 = 0.005
	DefaultZoomSpeed   float32 = 0.5
	DefaultPanSpeed    float32 = 0.001
)

// cameraConfig collects the options shared by both camera variants.
// Options a variant does not use are ignored by it.
type cameraConfig struct {
	target      [3]float32
	distance    float32
	distanceMin float32
	distanceMax float32

	yaw      float32
	pitch    float32
	pitchMin float32
	pitchMax float32

	orientation *common.Quat

	mouseSpeed float32
	zoomSpeed  float32
	panSpeed   float32

	fov    float32
	aspect float32
	near   float32
	far    float32
}

func newCameraConfig(options []CameraBuilderOption) cameraConfig {
	cfg := cameraConfig{
		distance:    DefaultDistance,
		distanceMin: DefaultDistanceMin,
		distanceMax: DefaultDistanceMax,
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		pitchMin:    DefaultPitchMin,
		pitchMax:    DefaultPitchMax,
		mouseSpeed:  DefaultMouseSpeed,
		zoomSpeed:   DefaultZoomSpeed,
		panSpeed:    DefaultPanSpeed,
		fov:         DefaultFov,
		aspect:      DefaultAspect,
		near:        DefaultNear,
		far:         DefaultFar,
	}
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// CameraBuilderOption is a functional option for configuring a Camera via NewEulerCamera,
// NewQuaternionCamera or New.
type CameraBuilderOption func(*cameraConfig)

// WithTarget sets the point the camera orbits around.
//
// Parameters:
//   - target: the orbit target
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithTarget(target [3]float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.target = target
	}
}

// WithDistance sets the initial orbit distance. It is clamped to the distance bounds.
//
// Parameters:
//   - distance: the eye to target distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.distance = distance
	}
}

// WithDistanceBounds sets the orbit distance clamp.
//
// Parameters:
//   - minDistance: the closest the eye may get to the target
//   - maxDistance: the farthest the eye may get from the target
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance bounds
func WithDistanceBounds(minDistance, maxDistance float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.distanceMin = minDistance
		c.distanceMax = maxDistance
	}
}

// WithYaw sets the initial yaw in radians about world +Z.
// The quaternion camera uses it to derive its default orientation.
//
// Parameters:
//   - yaw: the yaw angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial pitch in radians above the XY plane.
//
// Parameters:
//   - pitch: the pitch angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.pitch = pitch
	}
}

// WithPitchBounds sets the Euler camera's pitch clamp. Both bounds should stay strictly inside ±π/2.
//
// Parameters:
//   - minPitch, maxPitch: the pitch clamp in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the pitch bounds
func WithPitchBounds(minPitch, maxPitch float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.pitchMin = minPitch
		c.pitchMax = maxPitch
	}
}

// WithOrientation sets the quaternion camera's initial orientation, overriding yaw and pitch.
//
// Parameters:
//   - q: the orientation; it is normalized before use
//
// Returns:
//   - CameraBuilderOption: a function that sets the orientation
func WithOrientation(q common.Quat) CameraBuilderOption {
	return func(c *cameraConfig) {
		n := q.Normalize()
		c.orientation = &n
	}
}

// WithMouseSpeed sets the radians of rotation per pixel of orbit input.
func WithMouseSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.mouseSpeed = speed
	}
}

// WithZoomSpeed sets the distance change per unit of scroll.
func WithZoomSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.zoomSpeed = speed
	}
}

// WithPanSpeed sets the target translation per pixel, per unit of distance.
func WithPanSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.panSpeed = speed
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: a function that sets the aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.far = far
	}
}
