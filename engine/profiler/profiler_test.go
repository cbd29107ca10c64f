package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	logs := &bytes.Buffer{}
	p := NewProfiler(WithClock(clock.now), WithLogger(log.New(logs, "", 0)))

	for range 59 {
		clock.advance(time.Second / 60)
		assert.False(t, p.Tick(4))
	}
	clock.advance(time.Second / 60)
	require.True(t, p.Tick(4))

	stats := p.Last()
	assert.InDelta(t, 60, stats.FPS, 0.5)
	assert.InDelta(t, float64(time.Second/60), float64(stats.AvgFrameTime), float64(time.Millisecond))
	assert.InDelta(t, 4, stats.AvgInstances, 1e-9)
	assert.Contains(t, logs.String(), "[Profiler] FPS: ")
	assert.Contains(t, logs.String(), "Instances: 4")

	// counters restart after each report
	clock.advance(time.Second / 2)
	assert.False(t, p.Tick(0))
}

func TestProfilerOptions(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	logs := &bytes.Buffer{}
	p := NewProfiler(WithClock(clock.now), WithLogger(log.New(logs, "", 0)), WithInterval(250*time.Millisecond))

	clock.advance(250 * time.Millisecond)
	assert.True(t, p.Tick(10))
	assert.InDelta(t, 4, p.Last().FPS, 1e-9)

	// invalid values keep the defaults
	q := NewProfiler(WithInterval(0), WithLogger(nil), WithClock(nil))
	assert.Equal(t, time.Second, q.updateInterval)
	assert.NotNil(t, q.logger)
	assert.NotNil(t, q.now)
}
