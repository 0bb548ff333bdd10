package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	assert.True(t, mock.Now().Equal(epoch))

	mock.Advance(time.Hour)
	assert.True(t, mock.Now().Equal(epoch.Add(time.Hour)))

	later := epoch.Add(48 * time.Hour)
	mock.SetTime(later)
	assert.True(t, mock.Now().Equal(later))
}

func TestTaskLifecycle(t *testing.T) {
	task := NewTask()
	assert.True(t, task.Active())
	assert.False(t, task.Cancelled())

	task.Cancel()
	task.Cancel()
	assert.False(t, task.Active())
	assert.True(t, task.Cancelled())

	select {
	case <-task.Done():
	default:
		t.Fatal("Done not closed after Cancel")
	}

	var nilTask *Task
	assert.NotPanics(t, func() { nilTask.Cancel() })
	assert.False(t, nilTask.Active())
}

func TestManualSchedulerTicksInOrder(t *testing.T) {
	s := NewManualScheduler(epoch)
	var log []string

	s.Every(10*time.Millisecond, func() bool {
		log = append(log, "a")
		return true
	})
	s.Every(25*time.Millisecond, func() bool {
		log = append(log, "b")
		return false
	})

	s.Advance(50 * time.Millisecond)
	// a@10 a@20 b@25 a@30 a@40 a@50
	assert.Equal(t, []string{"a", "a", "b", "a", "a", "a"}, log)
	assert.Equal(t, 1, s.Pending(), "b completed after one tick")
	assert.True(t, s.Now().Equal(epoch.Add(50*time.Millisecond)))
}

func TestManualSchedulerTickSeesDueTime(t *testing.T) {
	s := NewManualScheduler(epoch)
	var seen []time.Duration
	s.Every(16*time.Millisecond, func() bool {
		seen = append(seen, s.Now().Sub(epoch))
		return len(seen) < 3
	})
	s.Advance(time.Second)
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}, seen)
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler(epoch)
	ticks := 0
	task := s.Every(10*time.Millisecond, func() bool {
		ticks++
		return true
	})
	s.Advance(35 * time.Millisecond)
	require.Equal(t, 3, ticks)

	task.Cancel()
	s.Advance(time.Second)
	assert.Equal(t, 3, ticks)
	assert.Zero(t, s.Pending())
}

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	l := NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	results := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, l.Post(func() { results <- i }))
	}
	for want := 1; want <= 3; want++ {
		select {
		case got := <-results:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatal("posted work did not run")
		}
	}

	l.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.False(t, l.Post(func() {}), "post after stop is rejected")
}

func TestLoopRunTwice(t *testing.T) {
	l := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	// Wait for the first Run to claim the loop
	require.Eventually(t, func() bool { return l.running.Load() }, time.Second, time.Millisecond)
	assert.ErrorIs(t, l.Run(ctx), ErrLoopRunning)
	cancel()
}

func TestTickerSchedulerPostsToLoop(t *testing.T) {
	l := NewLoop(64)
	s := NewTickerScheduler(l, nil)

	ticks := 0
	task := s.Every(time.Millisecond, func() bool {
		ticks++
		return ticks < 3
	})

	// Ticks only run when the loop drains them
	require.Eventually(t, func() bool {
		l.Drain()
		return !task.Active()
	}, 2*time.Second, 2*time.Millisecond)
	assert.Equal(t, 3, ticks)
}

func TestTickerSchedulerCancelStopsTicks(t *testing.T) {
	l := NewLoop(64)
	s := NewTickerScheduler(l, nil)

	ticks := 0
	task := s.Every(time.Millisecond, func() bool {
		ticks++
		return true
	})
	time.Sleep(10 * time.Millisecond)
	task.Cancel()

	// Queued closures still check the flag before ticking
	l.Drain()
	assert.Zero(t, ticks)
}

func TestLoopAfterHookRunsPerItem(t *testing.T) {
	l := NewLoop(8)
	var trace []string
	l.SetAfter(func() { trace = append(trace, "flush") })

	require.True(t, l.Post(func() { trace = append(trace, "a") }))
	require.True(t, l.Post(func() { trace = append(trace, "b") }))
	assert.Equal(t, 2, l.Drain())
	assert.Equal(t, []string{"a", "flush", "b", "flush"}, trace)
}
