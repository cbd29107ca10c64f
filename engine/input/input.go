package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/Carmen-Shannon/oxy-prims/engine/window"
	"github.com/chewxy/math32"
)

// DefaultPinchZoomScale converts a change in two-finger spacing (pixels) into a zoom amount.
const DefaultPinchZoomScale float32 = 0.2

// Orbiter is the camera surface the controller drives. camera.Camera satisfies it.
type Orbiter interface {
	Orbit(dx, dy float32)
	Pan(dx, dy float32)
	Zoom(scroll float32)
}

// Controller maps pointer, touch and key events onto camera motion.
//
// Mouse: left-drag orbits, right-drag pans and the wheel zooms. The first cursor event after any
// button change only re-anchors the pointer so that a press never produces a jump.
//
// Touch: one finger orbits, two fingers pinch-zoom and three fingers pan. With two or three
// fingers down only the primary (lowest id) touch moves the anchor.
type Controller interface {
	// Bind registers the controller's handlers on the window's mouse, scroll and key callbacks.
	//
	// Parameters:
	//   - w: the window to listen to
	Bind(w window.Window)

	// SetQuitCallback sets the function called when Escape is pressed.
	SetQuitCallback(callback func())

	// SetKeyCallback sets the function called for every other key press.
	SetKeyCallback(callback func(keyCode uint32))

	MouseDown(button uint32, x, y int32)
	MouseUp(button uint32, x, y int32)
	MouseMove(x, y int32)
	Scroll(delta float32)
	KeyDown(keyCode uint32)

	// TouchStart registers a new touch point.
	//
	// Parameters:
	//   - id: the platform touch id
	//   - x, y: the touch position in pixels
	TouchStart(id uint64, x, y float32)

	// TouchMove updates a touch point and applies the gesture for the current finger count.
	TouchMove(id uint64, x, y float32)

	// TouchEnd forgets a touch point.
	TouchEnd(id uint64)
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu  *sync.Mutex
	cam Orbiter

	pinchZoomScale float32

	buttonLeft    bool
	buttonRight   bool
	buttonMiddle  bool
	position      [2]float32
	needsReanchor bool
	touches       map[uint64][2]float32

	onQuit func()
	onKey  func(keyCode uint32)
}

var _ Controller = &controller{}

// ControllerBuilderOption is a functional option applied by NewController.
type ControllerBuilderOption func(*controller)

// WithPinchZoomScale sets the factor applied to spacing changes during a pinch.
// Defaults to DefaultPinchZoomScale.
//
// Parameters:
//   - scale: zoom per pixel of spacing change
//
// Returns:
//   - ControllerBuilderOption: a function that applies the option
func WithPinchZoomScale(scale float32) ControllerBuilderOption {
	return func(c *controller) {
		c.pinchZoomScale = scale
	}
}

// NewController creates a Controller driving the given camera.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(cam Orbiter, options ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:             &sync.Mutex{},
		cam:            cam,
		pinchZoomScale: DefaultPinchZoomScale,
		touches:        make(map[uint64][2]float32),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) Bind(w window.Window) {
	w.SetMouseDownCallback(c.MouseDown)
	w.SetMouseUpCallback(c.MouseUp)
	w.SetMouseMoveCallback(c.MouseMove)
	w.SetScrollCallback(c.Scroll)
	w.SetKeyDownCallback(c.KeyDown)
}

func (c *controller) SetQuitCallback(callback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onQuit = callback
}

func (c *controller) SetKeyCallback(callback func(keyCode uint32)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onKey = callback
}

func (c *controller) MouseDown(button uint32, _, _ int32) {
	c.setButton(button, true)
}

func (c *controller) MouseUp(button uint32, _, _ int32) {
	c.setButton(button, false)
}

func (c *controller) setButton(button uint32, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch button {
	case common.MouseButtonLeft:
		c.buttonLeft = pressed
	case common.MouseButtonRight:
		c.buttonRight = pressed
	case common.MouseButtonMiddle:
		c.buttonMiddle = pressed
	default:
		return
	}
	c.needsReanchor = true
}

func (c *controller) MouseMove(x, y int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := [2]float32{float32(x), float32(y)}
	if c.needsReanchor {
		c.position = pos
		c.needsReanchor = false
		return
	}
	if c.buttonLeft {
		c.cam.Orbit(pos[0]-c.position[0], pos[1]-c.position[1])
		c.position = pos
	}
	if c.buttonRight {
		c.cam.Pan(pos[0]-c.position[0], pos[1]-c.position[1])
		c.position = pos
	}
}

func (c *controller) Scroll(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam.Zoom(delta)
}

func (c *controller) KeyDown(keyCode uint32) {
	c.mu.Lock()
	onQuit, onKey := c.onQuit, c.onKey
	c.mu.Unlock()

	if keyCode == common.KeyEsc {
		if onQuit != nil {
			onQuit()
		}
		return
	}
	if onKey != nil {
		onKey(keyCode)
	}
}

func (c *controller) TouchStart(id uint64, x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, existed := c.touches[id]
	c.touches[id] = [2]float32{x, y}
	if !existed && len(c.touches) == 1 {
		c.position = [2]float32{x, y}
	}
}

func (c *controller) TouchMove(id uint64, x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.touches[id]
	curr := [2]float32{x, y}
	c.touches[id] = curr
	if !ok {
		return
	}

	switch len(c.touches) {
	case 2:
		other := c.touches[c.otherTouch(id)]
		prevSpacing := distance(other, prev)
		currSpacing := distance(other, curr)
		c.cam.Zoom((currSpacing - prevSpacing) * c.pinchZoomScale)
		if id == c.primaryTouch() {
			c.position = curr
		}
	case 3:
		if id == c.primaryTouch() {
			c.cam.Pan(curr[0]-prev[0], curr[1]-prev[1])
			c.position = curr
		}
	default:
		c.cam.Orbit(curr[0]-prev[0], curr[1]-prev[1])
		c.position = curr
	}
}

func (c *controller) TouchEnd(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.touches, id)
}

// primaryTouch returns the lowest active touch id. Caller must hold the mutex.
func (c *controller) primaryTouch() uint64 {
	first := true
	var lowest uint64
	for id := range c.touches {
		if first || id < lowest {
			lowest = id
			first = false
		}
	}
	return lowest
}

// otherTouch returns any active touch id other than id. Caller must hold the mutex.
func (c *controller) otherTouch(id uint64) uint64 {
	for other := range c.touches {
		if other != id {
			return other
		}
	}
	return id
}

func distance(a, b [2]float32) float32 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math32.Sqrt(dx*dx + dy*dy)
}
