package engine

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/input"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/profiler"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-prims/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of message loop iterations.
type fakeWindow struct {
	width, height int
	frames        int
	closed        int
	iterations    int

	onUpdate    func()
	onResize    func(width, height int)
	onKeyDown   func(keyCode uint32)
	onMouseDown func(button uint32, x, y int32)
	onMouseUp   func(button uint32, x, y int32)
	onMouseMove func(x, y int32)
	onScroll    func(delta float32)

	// beforeFrame runs ahead of the update callback on a given iteration.
	beforeFrame map[int]func()
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetScrollCallback(callback func(delta float32)) { w.onScroll = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.onKeyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetMouseDownCallback(callback func(b uint32, x, y int32)) { w.onMouseDown = callback }
func (w *fakeWindow) SetMouseUpCallback(callback func(b uint32, x, y int32)) { w.onMouseUp = callback }
func (w *fakeWindow) SetMouseMoveCallback(callback func(x, y int32)) { w.onMouseMove = callback }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return w.closed == 0 && w.iterations < w.frames }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) Close() error {
	w.closed++
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() {
		if fn := w.beforeFrame[w.iterations]; fn != nil {
			fn()
		}
		w.iterations++
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

// fakeRenderer counts frames and records resize order.
type fakeRenderer struct {
	events    []string
	submitted int
	renders   int
	renderErr error
	lastCam   camera.Transform
}

var _ renderer.Renderer = &fakeRenderer{}

func (r *fakeRenderer) Submit(cmds ...command.DrawCommand) { r.submitted += len(cmds) }

func (r *fakeRenderer) Render(cam camera.Transform) error {
	r.renders++
	r.lastCam = cam
	return r.renderErr
}

func (r *fakeRenderer) Resize(width, height int) { r.events = append(r.events, "resize") }

func (r *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (r *fakeRenderer) Store() mesh.Store { return nil }

func (r *fakeRenderer) Pipeline(string) pipeline.Pipeline { return nil }

func (r *fakeRenderer) InstancesDrawn() int { return r.submitted }

func (r *fakeRenderer) Release() {}

// aspectCamera records UpdateAspect calls on top of a real camera.
type aspectCamera struct {
	camera.Camera
	r       *fakeRenderer
	updates int
}

func (c *aspectCamera) UpdateAspect(width, height int) {
	c.updates++
	c.r.events = append(c.r.events, "aspect")
	c.Camera.UpdateAspect(width, height)
}

func TestEngineRunsFrames(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600, frames: 3}
	r := &fakeRenderer{}
	cam := camera.NewEulerCamera()

	e := NewEngine(WithWindow(win), WithRenderer(r), WithCamera(cam))

	var dts []float32
	e.SetRenderCallback(func(dt float32, got renderer.Renderer) {
		dts = append(dts, dt)
		got.Submit(command.NewDrawCommand(mesh.MeshTypeCube))
	})
	e.Run()

	assert.Len(t, dts, 3)
	assert.Equal(t, 3, r.renders)
	assert.Equal(t, 3, r.submitted)
	assert.Same(t, cam, r.lastCam)
	assert.Equal(t, 1, win.closed)
	assert.InDelta(t, float32(800)/600, cam.Aspect(), 1e-6)
}

func TestEngineResizeOrder(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600}
	r := &fakeRenderer{}
	cam := &aspectCamera{Camera: camera.NewEulerCamera(), r: r}

	NewEngine(WithWindow(win), WithRenderer(r), WithCamera(cam))
	r.events = nil
	cam.updates = 0

	win.onResize(1024, 512)
	assert.Equal(t, []string{"resize", "aspect"}, r.events)
	assert.Equal(t, 1, cam.updates)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
}

func TestEngineEscapeQuits(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600, frames: 10}
	r := &fakeRenderer{}
	cam := camera.NewEulerCamera()
	ctrl := input.NewController(cam)

	win.beforeFrame = map[int]func(){
		2: func() { win.onKeyDown(common.KeyEsc) },
	}

	e := NewEngine(WithWindow(win), WithRenderer(r), WithCamera(cam), WithInput(ctrl))
	e.Run()

	// frames 0 and 1 render; frame 2 sees the quit and closes the window
	assert.Equal(t, 2, r.renders)
	assert.Equal(t, 1, win.closed)
	assert.Equal(t, 3, win.iterations)
}

func TestEngineBindsInput(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600}
	cam := camera.NewEulerCamera()
	before := cam.Distance()

	NewEngine(WithWindow(win), WithCamera(cam), WithInput(input.NewController(cam)))
	require.NotNil(t, win.onScroll)
	require.NotNil(t, win.onMouseDown)
	require.NotNil(t, win.onMouseUp)
	require.NotNil(t, win.onMouseMove)

	win.onScroll(1)
	assert.Less(t, cam.Distance(), before)
}

func TestEngineLogsRenderErrors(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := log.New(logs, "", 0)

	win := &fakeWindow{width: 800, height: 600, frames: 1}
	r := &fakeRenderer{renderErr: errors.New("device lost")}
	NewEngine(WithWindow(win), WithRenderer(r), WithCamera(camera.NewEulerCamera()), WithLogger(logger)).Run()
	assert.Contains(t, logs.String(), "[Engine] render failed: device lost")

	logs.Reset()
	win = &fakeWindow{width: 0, height: 0, frames: 1}
	r = &fakeRenderer{renderErr: renderer.ErrSurfaceNotConfigured}
	NewEngine(WithWindow(win), WithRenderer(r), WithCamera(camera.NewEulerCamera()), WithLogger(logger)).Run()
	assert.Empty(t, logs.String())
}

func TestEngineProfiling(t *testing.T) {
	logs := &bytes.Buffer{}
	clock := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithLogger(log.New(logs, "", 0)),
		profiler.WithInterval(time.Second),
		profiler.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)

	win := &fakeWindow{width: 800, height: 600, frames: 1}
	r := &fakeRenderer{}
	e := NewEngine(WithWindow(win), WithRenderer(r), WithCamera(camera.NewEulerCamera()), WithProfiler(p), WithProfiling(true))
	e.SetRenderCallback(func(_ float32, rr renderer.Renderer) {
		rr.Submit(command.NewDrawCommand(mesh.MeshTypeSphere), command.NewDrawCommand(mesh.MeshTypeCube))
	})
	e.Run()

	assert.Contains(t, logs.String(), "[Profiler]")
	assert.Contains(t, logs.String(), "Instances: 2")
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-5))
	assert.Equal(t, 20*time.Millisecond, frameDuration(50))
}

func TestTickRate(t *testing.T) {
	assert.Equal(t, 2*time.Second, tickInterval(0.5))
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, time.Nanosecond, tickInterval(1e12))

	e := NewEngine(WithTickRate(0.5)).(*engine)
	assert.Equal(t, 2*time.Second, e.ticks.interval)

	e.SetTickRate(0.25)
	assert.Equal(t, 4*time.Second, e.ticks.interval)

	e.SetTickRate(-1)
	assert.Equal(t, time.Second/60, e.ticks.interval)
}

func TestTickRateWhileRunningKeepsNewest(t *testing.T) {
	loop := newTickLoop(30)
	loop.running = true

	loop.setRate(0.5)
	loop.setRate(2)
	require.Len(t, loop.rates, 1)
	assert.Equal(t, time.Second/30, loop.interval)

	loop.stopped()
	assert.Equal(t, 500*time.Millisecond, loop.interval)
	assert.Empty(t, loop.rates)
}

func TestTickLoopFiresUntilQuit(t *testing.T) {
	loop := newTickLoop(1000)
	ticks := make(chan float32, 16)
	loop.callback = func(dt float32) {
		select {
		case ticks <- dt:
		default:
		}
	}

	quit := make(chan struct{})
	var wg sync.WaitGroup
	loop.start(quit, &wg)
	loop.setRate(500)

	select {
	case dt := <-ticks:
		assert.Greater(t, dt, float32(0))
	case <-time.After(2 * time.Second):
		t.Fatal("tick callback never fired")
	}

	close(quit)
	wg.Wait()
	loop.stopped()
	assert.False(t, loop.running)
}
