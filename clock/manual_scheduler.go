package clock

import (
	"sort"
	"time"
)

// ManualScheduler runs ticks only when Advance is called
// Time comes from a MockTimeProvider that Advance moves forward, so animations
// observe exactly the elapsed time the test dictates
type ManualScheduler struct {
	time  *MockTimeProvider
	tasks []*manualTask
	seq   int
}

type manualTask struct {
	task     *Task
	interval time.Duration
	due      time.Time
	tick     func() bool
	seq      int
}

// NewManualScheduler creates a scheduler starting at start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{time: NewMockTimeProvider(start)}
}

// Now returns the mocked time
func (s *ManualScheduler) Now() time.Time {
	return s.time.Now()
}

// Every registers a task; the first tick is due one interval from now
func (s *ManualScheduler) Every(interval time.Duration, tick func() bool) *Task {
	if interval <= 0 {
		interval = FrameInterval
	}
	s.seq++
	mt := &manualTask{
		task:     NewTask(),
		interval: interval,
		due:      s.time.Now().Add(interval),
		tick:     tick,
		seq:      s.seq,
	}
	s.tasks = append(s.tasks, mt)
	return mt.task
}

// Advance moves time forward by d, firing every tick that falls due in order
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.time.Now().Add(d)
	for {
		s.prune()
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.time.SetTime(next.due)
		next.due = next.due.Add(next.interval)
		next.task.runTick(next.tick)
	}
	s.time.SetTime(target)
	s.prune()
}

// Pending returns the number of tasks that will still tick
func (s *ManualScheduler) Pending() int {
	s.prune()
	return len(s.tasks)
}

// nextDue picks the earliest task due at or before target; ties go to the older task
func (s *ManualScheduler) nextDue(target time.Time) *manualTask {
	candidates := make([]*manualTask, 0, len(s.tasks))
	for _, mt := range s.tasks {
		if !mt.due.After(target) {
			candidates = append(candidates, mt)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].due.Equal(candidates[j].due) {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].due.Before(candidates[j].due)
	})
	return candidates[0]
}

func (s *ManualScheduler) prune() {
	live := s.tasks[:0]
	for _, mt := range s.tasks {
		if mt.task.Active() {
			live = append(live, mt)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
