package magnet

import (
	"time"

	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/vmath"
)

// Pulse defaults
const (
	DefaultPulsePeriod = 600 * time.Millisecond
	DefaultPulsePeak   = 1.05
)

// Pulse oscillates the highlighted zone's scale between 1.0 and peak
// At most one zone pulses; purely cosmetic and independent of input events
type Pulse struct {
	sched  clock.Scheduler
	period time.Duration
	peak   float64

	task    *clock.Task
	zoneID  int64
	onScale func(scale float64)
}

// NewPulse creates an idle pulse; non-positive settings use defaults
func NewPulse(sched clock.Scheduler, period time.Duration, peak float64) *Pulse {
	if period <= 0 {
		period = DefaultPulsePeriod
	}
	if peak <= 1 {
		peak = DefaultPulsePeak
	}
	return &Pulse{sched: sched, period: period, peak: peak}
}

// Start pulses zoneID, replacing any other pulsing zone
// Restarting the zone that is already pulsing is a no-op
func (p *Pulse) Start(zoneID int64, onScale func(scale float64)) {
	if p.task.Active() && p.zoneID == zoneID {
		return
	}
	p.Stop()

	p.zoneID = zoneID
	p.onScale = onScale
	start := p.sched.Now()
	period := float64(p.period)
	amp := p.peak - 1

	p.task = p.sched.Every(clock.FrameInterval, func() bool {
		elapsed := float64(p.sched.Now().Sub(start))
		onScale(1 + amp*vmath.Oscillate(elapsed, period))
		return true
	})
}

// Stop cancels the pulse and restores scale 1.0 immediately
func (p *Pulse) Stop() {
	if !p.task.Active() {
		p.task = nil
		return
	}
	p.task.Cancel()
	p.task = nil
	if p.onScale != nil {
		p.onScale(1)
	}
	p.onScale = nil
}

// Active reports whether a zone is pulsing
func (p *Pulse) Active() bool {
	return p.task.Active()
}

// ZoneID returns the pulsing zone, valid while Active
func (p *Pulse) ZoneID() int64 {
	return p.zoneID
}
