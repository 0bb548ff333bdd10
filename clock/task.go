package clock

import (
	"sync"
	"sync/atomic"
)

// Task is a handle on a scheduled, repeating piece of work
// Cancellation is cooperative: the flag is checked before every tick and
// nothing already delivered is rolled back
type Task struct {
	cancelled atomic.Bool
	done      chan struct{}
	once      sync.Once
}

// NewTask creates a live task handle
func NewTask() *Task {
	return &Task{done: make(chan struct{})}
}

// Cancel stops future ticks; safe on nil and safe to repeat
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
	t.finish()
}

// Cancelled reports whether Cancel was called
func (t *Task) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Active reports whether the task will still tick
func (t *Task) Active() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Done is closed when the task completes or is cancelled
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// finish marks natural completion
func (t *Task) finish() {
	t.once.Do(func() { close(t.done) })
}

// runTick executes one tick unless cancelled, finishing the task when tick declines to continue
func (t *Task) runTick(tick func() bool) {
	if !t.Active() || t.Cancelled() {
		return
	}
	if !tick() {
		t.finish()
	}
}
