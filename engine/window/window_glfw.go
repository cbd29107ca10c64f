package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform is the GLFW window. Its callbacks only translate GLFW types into engineWindow events.
type glfwPlatform struct {
	window *glfw.Window
}

var _ platform = &glfwPlatform{}

// newGLFWPlatform initializes GLFW, creates a window without a client API and binds its events to w.
// The initial surface size is read back from the framebuffer and clamped.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newGLFWPlatform(w *engineWindow) (*glfwPlatform, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// wgpu owns the graphics API.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	p := &glfwPlatform{window: win}
	p.bind(w)

	l := w.limits
	win.SetSizeLimits(limitOrDontCare(l.MinWidth), limitOrDontCare(l.MinHeight),
		limitOrDontCare(l.MaxWidth), limitOrDontCare(l.MaxHeight))

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width, w.height = ClampSurfaceSize(fbWidth, fbHeight, w.maxSurfaceDimension)

	x, y := win.GetCursorPos()
	w.cursorX, w.cursorY = int32(x), int32(y)

	return p, nil
}

// bind registers the GLFW callbacks. Resize uses the framebuffer size so high-DPI surfaces get pixels.
func (p *glfwPlatform) bind(w *engineWindow) {
	p.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.handleKey(uint32(key), action != glfw.Release)
	})
	p.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.handleMouseButton(uint32(button), action == glfw.Press)
	})
	p.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.handleCursor(x, y)
	})
	p.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.handleScroll(yoff)
	})
	p.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.handleFramebufferSize(width, height)
	})
}

func limitOrDontCare(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// surfaceDescriptor comes from the wgpuglfw bridge, which covers Windows, X11, Wayland and macOS.
func (p *glfwPlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(p.window)
}

func (p *glfwPlatform) shouldClose() bool {
	return p.window.ShouldClose()
}

func (p *glfwPlatform) poll() {
	glfw.PollEvents()
}

// destroy tears down the window and the GLFW library.
func (p *glfwPlatform) destroy() {
	p.window.SetShouldClose(true)
	p.window.Destroy()
	glfw.Terminate()
}
