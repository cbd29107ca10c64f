package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/input"
	"github.com/Carmen-Shannon/oxy-prims/engine/profiler"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer"
	"github.com/Carmen-Shannon/oxy-prims/engine/window"
)

// engine implements the Engine interface.
// Rendering runs on the window's message loop; the fixed-rate tick runs in its own goroutine.
type engine struct {
	ticks *tickLoop
	wg    sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	closeOnce   sync.Once

	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	input    input.Controller
	logger   *log.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback func(deltaTime float32, r renderer.Renderer)

	lastRender       time.Time
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It wires window events to the renderer, camera and input controller and drives one frame per
// message loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	Renderer() renderer.Renderer

	// Camera returns the camera frames are drawn from.
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// The callback runs on the tick goroutine, not the render thread.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called at the start of each frame.
	// Submit the frame's draw commands to the renderer from here.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds and the renderer
	SetRenderCallback(callback func(deltaTime float32, r renderer.Renderer))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main engine loop (blocks until window closes).
	Run()

	// Quit signals the engine to stop. The window is closed at the start of the next frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Binds the resize callback to the renderer and camera, and the input controller to the window.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, camera, input, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		ticks:       newTickLoop(60),
		quitChannel: make(chan struct{}),
		logger:      log.Default(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(e.frame)
		if e.input != nil {
			e.input.Bind(e.window)
		}
	}
	if e.input != nil {
		e.input.SetQuitCallback(e.Quit)
	}
	if e.camera != nil && e.window != nil {
		e.camera.UpdateAspect(e.window.Width(), e.window.Height())
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

// Run starts the tick loop, then drives frames from the window's message loop until it closes.
func (e *engine) Run() {
	e.lastRender = time.Now()
	e.ticks.start(e.quitChannel, &e.wg)
	e.window.ProcessMessages()

	e.signalQuit()
	e.closeWindow()
	e.wg.Wait()
	e.ticks.stopped()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Printf("[Engine] failed to close window: %v", err)
		}
	})
}

// resize reconfigures the renderer before the camera so the next frame sees both at the new size.
func (e *engine) resize(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.camera != nil {
		e.camera.UpdateAspect(width, height)
	}
}

// frame runs once per message loop iteration on the window's thread: the render callback
// submits commands, the renderer draws them from the camera, then the profiler ticks.
// A surface without size is skipped silently; any other render error is logged.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		e.closeWindow()
		return
	default:
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	if e.renderCallback != nil {
		e.renderCallback(dt, e.renderer)
	}

	if e.renderer != nil && e.camera != nil {
		if err := e.renderer.Render(e.camera); err != nil && !errors.Is(err, renderer.ErrSurfaceNotConfigured) {
			e.logger.Printf("[Engine] render failed: %v", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		drawn := 0
		if e.renderer != nil {
			drawn = e.renderer.InstancesDrawn()
		}
		e.profiler.Tick(drawn)
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		elapsed := time.Since(now)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate changes the tick rate. A running loop picks it up on its next select.
func (e *engine) SetTickRate(fps float64) {
	e.ticks.setRate(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.ticks.callback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32, r renderer.Renderer)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
