package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrLoopRunning is returned when Run is called on a loop that is already running
var ErrLoopRunning = errors.New("event loop already running")

// Loop is the single-threaded event surface
// Pointer events, layout and animation ticks are all posted here and run one at a time
// in post order, so state they share needs no locking
type Loop struct {
	queue   chan func()
	done    chan struct{}
	once    sync.Once
	running atomic.Bool
	after   func()
}

// NewLoop creates a loop with a bounded queue
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 256
	}
	return &Loop{
		queue: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// SetAfter installs a hook run after each posted function, e.g. a frame flush
// Must be called before Run
func (l *Loop) SetAfter(fn func()) {
	l.after = fn
}

// Post enqueues fn, blocking while the queue is full
// Returns false once the loop is stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted work until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	fn()
	if l.after != nil {
		l.after()
	}
}

// Drain runs everything currently queued on the caller's goroutine
// Intended for tests and for shutdown flushes; must not race with Run
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			l.exec(fn)
			n++
		default:
			return n
		}
	}
}

// Stop halts the loop; idempotent
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed when the loop stops
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
