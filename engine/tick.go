package engine

import (
	"sync"
	"time"
)

// tickLoop fires the fixed-rate tick callback on its own goroutine, independent of frame pacing.
// Rate changes made while it runs are queued on rates, keeping only the newest.
type tickLoop struct {
	interval time.Duration
	rates    chan time.Duration
	callback func(deltaTime float32)
	running  bool
}

func newTickLoop(fps float64) *tickLoop {
	return &tickLoop{
		interval: tickInterval(fps),
		rates:    make(chan time.Duration, 1),
	}
}

// tickInterval converts a tick rate to a ticker period. Rates <= 0 mean 60Hz, and the period
// never drops below 1ns since time.NewTicker rejects zero.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return max(frameDuration(fps), time.Nanosecond)
}

func (t *tickLoop) setRate(fps float64) {
	interval := tickInterval(fps)
	if !t.running {
		t.interval = interval
		return
	}
	for {
		select {
		case t.rates <- interval:
			return
		default:
			select {
			case <-t.rates:
			default:
			}
		}
	}
}

// start runs the loop until quit closes. wg is released when it returns.
func (t *tickLoop) start(quit <-chan struct{}, wg *sync.WaitGroup) {
	t.running = true
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-quit:
				return
			case now := <-ticker.C:
				dt := float32(now.Sub(last).Seconds())
				last = now
				if t.callback != nil {
					t.callback(dt)
				}
			case interval := <-t.rates:
				t.interval = interval
				ticker.Reset(interval)
			}
		}
	}()
}

// stopped marks the loop idle after its goroutine exits, keeping any rate queued meanwhile.
func (t *tickLoop) stopped() {
	t.running = false
	select {
	case interval := <-t.rates:
		t.interval = interval
	default:
	}
}
