package window

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform replays queued events on each poll and closes after a fixed number of polls.
type fakePlatform struct {
	events    [][]func()
	polls     int
	maxPolls  int
	destroyed int
}

var _ platform = &fakePlatform{}

func (p *fakePlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor { return &wgpu.SurfaceDescriptor{} }
func (p *fakePlatform) shouldClose() bool { return p.polls >= p.maxPolls }
func (p *fakePlatform) destroy() { p.destroyed++ }

func (p *fakePlatform) poll() {
	if p.polls < len(p.events) {
		for _, ev := range p.events[p.polls] {
			ev()
		}
	}
	p.polls++
}

func TestClampSurfaceSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxDim        int
		wantW, wantH  int
	}{
		{"within limit", 1280, 720, 2048, 1280, 720},
		{"exactly at limit", 2048, 1024, 2048, 2048, 1024},
		{"wide", 4096, 2160, 2048, 2048, 1080},
		{"tall", 1000, 4000, 2048, 512, 2048},
		{"zero height", 3000, 0, 2048, 2048, 0},
		{"no limit", 5000, 5000, 0, 5000, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ClampSurfaceSize(tt.width, tt.height, tt.maxDim)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestResizeClampsBeforeCallback(t *testing.T) {
	w := newEngineWindow(WithMaxSurfaceDimension(1000))

	var gotW, gotH int
	calls := 0
	w.SetResizeCallback(func(width, height int) {
		gotW, gotH = width, height
		calls++
	})

	w.handleFramebufferSize(2000, 1000)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1000, gotW)
	assert.Equal(t, 500, gotH)
	assert.Equal(t, 1000, w.Width())
	assert.Equal(t, 500, w.Height())
}

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow(WithTitle("prims"), WithSize(800, 600))

	assert.Equal(t, "prims", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, DefaultMaxSurfaceDimension, w.maxSurfaceDimension)
	assert.Equal(t, DefaultSizeLimits, w.limits)
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.ErrorIs(t, w.Close(), ErrNotSpawned)
}

func TestBuilderKeepsDefaultsForEmptyValues(t *testing.T) {
	limits := SizeLimits{MaxWidth: 1024}
	w := newEngineWindow(WithTitle(""), WithSize(0, -1), WithSizeLimits(limits))

	assert.Equal(t, "oxy-prims", w.title)
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, limits, w.limits)
}

func TestMouseButtonsCarryLastCursorPosition(t *testing.T) {
	w := newEngineWindow()

	type press struct {
		down   bool
		button uint32
		x, y   int32
	}
	var got []press
	var moves int
	w.SetMouseDownCallback(func(button uint32, x, y int32) { got = append(got, press{true, button, x, y}) })
	w.SetMouseUpCallback(func(button uint32, x, y int32) { got = append(got, press{false, button, x, y}) })
	w.SetMouseMoveCallback(func(x, y int32) { moves++ })

	w.handleCursor(10.7, 20.2)
	w.handleMouseButton(0, true)
	w.handleCursor(30, 40)
	w.handleMouseButton(1, true)
	w.handleMouseButton(0, false)
	w.handleMouseButton(2, true)

	assert.Equal(t, 2, moves)
	assert.Equal(t, []press{
		{true, 0, 10, 20},
		{true, 1, 30, 40},
		{false, 0, 30, 40},
		{true, 2, 30, 40},
	}, got)
}

func TestKeyAndScrollDispatch(t *testing.T) {
	w := newEngineWindow()

	var down, up []uint32
	var scroll float32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })
	w.SetScrollCallback(func(d float32) { scroll += d })

	w.handleKey(256, true)
	w.handleKey(256, true)
	w.handleKey(256, false)
	w.handleScroll(-1.5)

	assert.Equal(t, []uint32{256, 256}, down)
	assert.Equal(t, []uint32{256}, up)
	assert.InDelta(t, -1.5, scroll, 1e-6)

	// Unset callbacks are skipped.
	w.SetKeyDownCallback(nil)
	w.SetScrollCallback(nil)
	w.handleKey(32, true)
	w.handleScroll(1)
	w.handleFramebufferSize(100, 100)
}

func TestProcessMessagesDispatchesBeforeUpdate(t *testing.T) {
	w := newEngineWindow()
	var log []string
	p := &fakePlatform{
		maxPolls: 3,
		events: [][]func(){
			{func() { w.handleFramebufferSize(640, 480) }},
			{func() { w.handleKey(32, true) }},
		},
	}
	w.platform = p
	w.SetResizeCallback(func(width, height int) { log = append(log, "resize") })
	w.SetKeyDownCallback(func(uint32) { log = append(log, "key") })
	w.SetUpdateCallback(func() { log = append(log, "update") })

	require.True(t, w.IsRunning())
	assert.NotNil(t, w.SurfaceDescriptor())
	w.ProcessMessages()

	// The third poll reports close, so no update follows it.
	assert.Equal(t, []string{"resize", "update", "key", "update"}, log)
	assert.Equal(t, 640, w.Width())
	assert.False(t, w.IsRunning())
}

func TestCloseDestroysOnce(t *testing.T) {
	w := newEngineWindow()
	p := &fakePlatform{maxPolls: 10}
	w.platform = p

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, 1, p.destroyed)
	assert.False(t, w.IsRunning())

	updates := 0
	w.SetUpdateCallback(func() { updates++ })
	w.ProcessMessages()
	assert.Zero(t, updates)
}
