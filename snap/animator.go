// Package snap eases the token back to the nearest screen edge after a drag that did not drop
package snap

import (
	"math"
	"time"

	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/vmath"
)

// Params tunes edge-snap timing
type Params struct {
	PxPerMs      float64 // Travel speed used to derive duration
	MinDuration  time.Duration
	MaxDuration  time.Duration
	TickInterval time.Duration
}

// DefaultParams returns the stock timing: 5 px/ms, 100..300 ms, ~60 Hz
func DefaultParams() Params {
	return Params{
		PxPerMs:      5,
		MinDuration:  100 * time.Millisecond,
		MaxDuration:  300 * time.Millisecond,
		TickInterval: clock.FrameInterval,
	}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.PxPerMs <= 0 {
		p.PxPerMs = d.PxPerMs
	}
	if p.MinDuration <= 0 {
		p.MinDuration = d.MinDuration
	}
	if p.MaxDuration < p.MinDuration {
		p.MaxDuration = max(d.MaxDuration, p.MinDuration)
	}
	if p.TickInterval <= 0 {
		p.TickInterval = d.TickInterval
	}
	return p
}

// Duration returns the animation length for a travel distance in pixels
func (p Params) Duration(distance int) time.Duration {
	p = p.normalized()
	ms := math.Abs(float64(distance)) / p.PxPerMs
	d := time.Duration(ms * float64(time.Millisecond))
	return vmath.ClampDuration(d, p.MinDuration, p.MaxDuration)
}

// Target returns the edge the token snaps to: left when its center is left of screen center
func Target(currentX, screenW, tokenW int) int {
	if float64(currentX)+float64(tokenW)/2 < float64(screenW)/2 {
		return 0
	}
	return max(screenW-tokenW, 0)
}

// Animator runs at most one edge-snap at a time
type Animator struct {
	sched  clock.Scheduler
	params Params
	task   *clock.Task
}

// New creates an animator ticking on sched
func New(sched clock.Scheduler, p Params) *Animator {
	return &Animator{sched: sched, params: p.normalized()}
}

// SetParams replaces the timing for subsequent animations
func (a *Animator) SetParams(p Params) {
	a.params = p.normalized()
}

// Start animates from currentX to the nearest edge, calling onUpdate on every tick
// The final update is pinned exactly to the target; any running animation is cancelled first
func (a *Animator) Start(currentX, screenW, tokenW int, onUpdate func(x int)) *clock.Task {
	a.Cancel()

	target := Target(currentX, screenW, tokenW)
	dist := target - currentX
	dur := a.params.Duration(dist)
	start := a.sched.Now()
	from := float64(currentX)

	a.task = a.sched.Every(a.params.TickInterval, func() bool {
		elapsed := a.sched.Now().Sub(start)
		if elapsed >= dur {
			onUpdate(target)
			return false
		}
		t := float64(elapsed) / float64(dur)
		x := from + float64(dist)*vmath.EaseOutCubic(t)
		onUpdate(int(math.Round(x)))
		return true
	})
	return a.task
}

// Cancel stops the running animation without a final snap
func (a *Animator) Cancel() {
	if a.task != nil {
		a.task.Cancel()
		a.task = nil
	}
}

// Active reports whether an animation is in flight
func (a *Animator) Active() bool {
	return a.task.Active()
}
