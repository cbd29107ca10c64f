package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	logger *log.Logger
	now    func() time.Time

	frameCount     int
	instanceTotal  int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// Stats is the summary of one profiling interval.
type Stats struct {
	FPS          float64
	AvgFrameTime time.Duration
	AvgInstances float64
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
}

// ProfilerBuilderOption is a functional option applied by NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are logged. Defaults to 1 second.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger stats are written to. A nil logger is ignored.
func WithLogger(logger *log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and output goes to the standard logger.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, average frame time, average instances drawn, heap usage, allocation rate and GC count.
//
// Parameters:
//   - instancesDrawn: the number of instances the frame just drew
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(instancesDrawn int) bool {
	p.frameCount++
	p.instanceTotal += instancesDrawn
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	// TotalAlloc only grows, so the delta is the allocation churn of the interval
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	p.last = Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgFrameTime: elapsed / time.Duration(p.frameCount),
		AvgInstances: float64(p.instanceTotal) / float64(p.frameCount),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC - p.lastGCCount,
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms | Instances: %.0f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		p.last.FPS, float64(p.last.AvgFrameTime.Microseconds())/1000, p.last.AvgInstances,
		p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount)

	p.frameCount = 0
	p.instanceTotal = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats of the most recently logged interval.
func (p *Profiler) Last() Stats {
	return p.last
}
