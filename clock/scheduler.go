package clock

import (
	"time"

	"github.com/lixenwraith/shotdrop/core"
)

// FrameInterval is the ~60 Hz cadence used by every animation
const FrameInterval = 16 * time.Millisecond

// Scheduler runs repeating ticks on the event surface
// tick runs on the same thread as pointer events and returns false when the animation is complete
type Scheduler interface {
	Every(interval time.Duration, tick func() bool) *Task
	Now() time.Time
}

// Poster accepts work for the single-threaded event surface
type Poster interface {
	Post(fn func()) bool
}

// TickerScheduler drives ticks from time.Ticker goroutines and posts them onto a Poster
// Ticks never execute on the ticker goroutine
type TickerScheduler struct {
	poster Poster
	time   TimeProvider
}

// NewTickerScheduler creates a scheduler posting into poster
func NewTickerScheduler(poster Poster, tp TimeProvider) *TickerScheduler {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &TickerScheduler{poster: poster, time: tp}
}

// Now returns the scheduler's time source reading
func (s *TickerScheduler) Now() time.Time {
	return s.time.Now()
}

// Every schedules tick at interval until it returns false or the task is cancelled
func (s *TickerScheduler) Every(interval time.Duration, tick func() bool) *Task {
	if interval <= 0 {
		interval = FrameInterval
	}
	task := NewTask()

	core.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-task.Done():
				return
			case <-ticker.C:
				if task.Cancelled() {
					return
				}
				// Re-check inside the posted closure: cancel may land between post and run
				if !s.poster.Post(func() { task.runTick(tick) }) {
					task.Cancel()
					return
				}
			}
		}
	})

	return task
}
