package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	dx, dy float32
}

type fakeCamera struct {
	calls []call
}

func (f *fakeCamera) Orbit(dx, dy float32) { f.calls = append(f.calls, call{"orbit", dx, dy}) }
func (f *fakeCamera) Pan(dx, dy float32) { f.calls = append(f.calls, call{"pan", dx, dy}) }
func (f *fakeCamera) Zoom(scroll float32) { f.calls = append(f.calls, call{"zoom", scroll, 0}) }

func TestMouseLeftDragOrbits(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.MouseDown(common.MouseButtonLeft, 100, 100)
	c.MouseMove(100, 100) // re-anchor only
	c.MouseMove(110, 95)
	c.MouseMove(115, 95)

	assert.Equal(t, []call{{"orbit", 10, -5}, {"orbit", 5, 0}}, cam.calls)
}

func TestMouseReanchorsAfterButtonChange(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.MouseDown(common.MouseButtonLeft, 0, 0)
	c.MouseMove(10, 10)
	c.MouseMove(20, 10)
	c.MouseUp(common.MouseButtonLeft, 20, 10)

	// the pointer moved a long way while released; the next press must not jump
	c.MouseDown(common.MouseButtonRight, 500, 500)
	c.MouseMove(500, 500)
	c.MouseMove(504, 498)

	assert.Equal(t, []call{{"orbit", 10, 0}, {"pan", 4, -2}}, cam.calls)
}

func TestMouseMoveWithoutButtonsIsIgnored(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.MouseMove(10, 10)
	c.MouseMove(50, 50)
	c.MouseDown(7, 0, 0) // unknown buttons do not re-anchor
	c.MouseMove(60, 60)

	assert.Empty(t, cam.calls)
}

func TestScrollZooms(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.Scroll(1.5)
	c.Scroll(-2)

	assert.Equal(t, []call{{"zoom", 1.5, 0}, {"zoom", -2, 0}}, cam.calls)
}

func TestEscapeQuits(t *testing.T) {
	c := NewController(&fakeCamera{})

	quit := 0
	var keys []uint32
	c.SetQuitCallback(func() { quit++ })
	c.SetKeyCallback(func(k uint32) { keys = append(keys, k) })

	c.KeyDown(common.KeySpace)
	c.KeyDown(common.KeyEsc)

	assert.Equal(t, 1, quit)
	assert.Equal(t, []uint32{common.KeySpace}, keys)
}

func TestOneFingerOrbits(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.TouchStart(1, 10, 10)
	c.TouchMove(1, 13, 14)

	assert.Equal(t, []call{{"orbit", 3, 4}}, cam.calls)
}

func TestTwoFingerPinchZooms(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.TouchStart(1, 0, 0)
	c.TouchStart(2, 10, 0)
	c.TouchMove(2, 20, 0)

	require.Len(t, cam.calls, 1)
	assert.Equal(t, "zoom", cam.calls[0].op)
	assert.InDelta(t, (20-10)*DefaultPinchZoomScale, cam.calls[0].dx, 1e-6)

	c.TouchMove(1, 5, 0)
	require.Len(t, cam.calls, 2)
	assert.InDelta(t, (15-20)*DefaultPinchZoomScale, cam.calls[1].dx, 1e-6)
}

func TestPinchZoomScaleOption(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam, WithPinchZoomScale(1))

	c.TouchStart(1, 0, 0)
	c.TouchStart(2, 0, 3)
	c.TouchMove(2, 0, 7)

	require.Len(t, cam.calls, 1)
	assert.InDelta(t, 4, cam.calls[0].dx, 1e-6)
}

func TestThreeFingerPanUsesPrimaryTouch(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.TouchStart(5, 0, 0)
	c.TouchStart(9, 50, 50)
	c.TouchStart(7, 100, 0)

	c.TouchMove(9, 60, 60) // not primary
	c.TouchMove(5, 2, -3)

	assert.Equal(t, []call{{"pan", 2, -3}}, cam.calls)
}

func TestTouchEndAndUnknownMove(t *testing.T) {
	cam := &fakeCamera{}
	c := NewController(cam)

	c.TouchMove(3, 10, 10) // unknown touch is recorded without a gesture
	assert.Empty(t, cam.calls)

	c.TouchStart(4, 0, 0)
	c.TouchEnd(3)
	c.TouchMove(4, 1, 1)
	assert.Equal(t, []call{{"orbit", 1, 1}}, cam.calls)
}
