package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultMaxSurfaceDimension is the largest width or height handed to resize callbacks.
const DefaultMaxSurfaceDimension = 2048

// ErrNotSpawned is returned when an operation needs the platform window before it exists.
var ErrNotSpawned = errors.New("window is not initialized")

// SizeLimits bounds the user-resizable window size. A zero field leaves that bound unset.
type SizeLimits struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

// DefaultSizeLimits allows anything from 320x240 up to 3840x2160.
var DefaultSizeLimits = SizeLimits{MinWidth: 320, MinHeight: 240, MaxWidth: 3840, MaxHeight: 2160}

// platform is the native window beneath an engineWindow. It reports raw events back through the
// engineWindow handle* methods.
type platform interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	shouldClose() bool
	poll()
	destroy()
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	// The size is clamped with ClampSurfaceSize before the callback fires.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button code (see common.MouseButton*) and mouse x, y position
	SetMouseDownCallback(callback func(button uint32, x, y int32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button code and mouse x, y position
	SetMouseUpCallback(callback func(button uint32, x, y int32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current clamped surface width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current clamped surface height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// It owns the event callbacks and the clamped surface size; the platform only feeds it raw events.
type engineWindow struct {
	title  string
	limits SizeLimits

	// maxSurfaceDimension caps the surface size reported to callbacks.
	maxSurfaceDimension int

	// width and height are the current clamped surface size in pixels.
	width, height int

	// cursorX and cursorY are the last cursor position, stamped onto button events.
	cursorX, cursorY int32

	platform platform
	closed   bool

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button uint32, x, y int32)
	onMouseUp   func(button uint32, x, y int32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options and spawns the GLFW window.
// Panics if GLFW cannot create the window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	p, err := newGLFWPlatform(w)
	if err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	w.platform = p
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:               "oxy-prims",
		limits:              DefaultSizeLimits,
		maxSurfaceDimension: DefaultMaxSurfaceDimension,
		width:               1280,
		height:              720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// ClampSurfaceSize scales width and height down uniformly so that neither exceeds maxDim.
// Sizes already within the limit, and a non-positive maxDim, are returned unchanged.
//
// Parameters:
//   - width, height: the framebuffer size in pixels
//   - maxDim: the largest allowed dimension
//
// Returns:
//   - int: the clamped width
//   - int: the clamped height
func ClampSurfaceSize(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return width, height
	}
	largest := max(width, height)
	scale := float64(maxDim) / float64(largest)
	return int(float64(width) * scale), int(float64(height) * scale)
}

// handleFramebufferSize records the clamped framebuffer size and notifies the resize callback.
func (w *engineWindow) handleFramebufferSize(width, height int) {
	w.width, w.height = ClampSurfaceSize(width, height, w.maxSurfaceDimension)
	if w.onResize != nil {
		w.onResize(w.width, w.height)
	}
}

// handleKey forwards presses and repeats to the key-down callback and releases to key-up.
func (w *engineWindow) handleKey(keyCode uint32, pressed bool) {
	cb := w.onKeyUp
	if pressed {
		cb = w.onKeyDown
	}
	if cb != nil {
		cb(keyCode)
	}
}

// handleMouseButton forwards any button with the last known cursor position.
func (w *engineWindow) handleMouseButton(button uint32, pressed bool) {
	cb := w.onMouseUp
	if pressed {
		cb = w.onMouseDown
	}
	if cb != nil {
		cb(button, w.cursorX, w.cursorY)
	}
}

func (w *engineWindow) handleCursor(x, y float64) {
	w.cursorX, w.cursorY = int32(x), int32(y)
	if w.onMouseMove != nil {
		w.onMouseMove(w.cursorX, w.cursorY)
	}
}

func (w *engineWindow) handleScroll(yoff float64) {
	if w.onScroll != nil {
		w.onScroll(float32(yoff))
	}
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button uint32, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button uint32, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && !w.closed && !w.platform.shouldClose()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return ErrNotSpawned
	}
	if w.closed {
		return nil
	}
	w.closed = true
	w.platform.destroy()
	return nil
}

// ProcessMessages polls events and runs the update callback until the window closes.
// Events polled in an iteration are dispatched before that iteration's update.
func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.poll()
		if !w.IsRunning() {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
