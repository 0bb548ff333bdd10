// Package engine turns pointer samples into token movement, zone highlighting,
// drops and edge snaps
//
// Every method must be called from the single event loop (clock.Loop); animation
// ticks are posted there by the scheduler, so no locking is needed
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/magnet"
	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/snap"
	"github.com/lixenwraith/shotdrop/status"
	"github.com/lixenwraith/shotdrop/vmath"
	"github.com/lixenwraith/shotdrop/zone"
)

var (
	ErrNoHost      = errors.New("engine: window host is required")
	ErrNoScheduler = errors.New("engine: scheduler is required")
)

// Engine is the drag-and-drop interaction core
type Engine struct {
	host    overlay.WindowHost
	sched   clock.Scheduler
	source  FolderSource
	cb      Callbacks
	tuning  Tuning
	log     *slog.Logger
	machine *input.Machine
	ctrl    *overlay.Controller
	hit     *magnet.HitTester
	pulse   *magnet.Pulse
	snapper *snap.Animator

	zones   []zone.DropZone
	folders []Folder

	session *DragSession
	downAt  vmath.Vec2

	statTaps         *atomic.Int64
	statDragStarts   *atomic.Int64
	statDrops        *atomic.Int64
	statSnaps        *atomic.Int64
	statHostFailures *atomic.Int64
	statZones        *atomic.Int64
	statDragging     *atomic.Bool
}

// New creates an engine; call Start before feeding pointer events
func New(opts Options) (*Engine, error) {
	if opts.Host == nil {
		return nil, ErrNoHost
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := opts.Tuning
	e := &Engine{
		host:    opts.Host,
		sched:   opts.Scheduler,
		source:  opts.Folders,
		cb:      opts.Callbacks,
		tuning:  t,
		log:     opts.Logger.With("component", "engine"),
		machine: input.NewMachine(),
		ctrl:    overlay.NewController(opts.Host, t.TokenWidth, t.TokenHeight),
		hit:     magnet.New(t.Magnet),
		pulse:   magnet.NewPulse(opts.Scheduler, t.PulsePeriod, t.PulsePeak),
		snapper: snap.New(opts.Scheduler, t.Snap),

		statTaps:         opts.Status.Int(status.Taps),
		statDragStarts:   opts.Status.Int(status.DragStarts),
		statDrops:        opts.Status.Int(status.Drops),
		statSnaps:        opts.Status.Int(status.Snaps),
		statHostFailures: opts.Status.Int(status.HostFailures),
		statZones:        opts.Status.Int(status.Zones),
		statDragging:     opts.Status.Flag("drag.active"),
	}
	e.machine.SetThresholds(t.DragThreshold, t.TapWindowMs)
	return e, nil
}

// Start places the token at (x, y) and computes the first layout
func (e *Engine) Start(x, y int) error {
	if err := e.ctrl.Initialize(x, y); err != nil {
		return fmt.Errorf("place token: %w", err)
	}
	return e.Relayout()
}

// Relayout recomputes zones from the folder list and current screen size
// On a folder listing error the previous zones stay in place
func (e *Engine) Relayout() error {
	var folders []Folder
	if e.source != nil {
		fs, err := e.source.ListFolders()
		if err != nil {
			return fmt.Errorf("list folders: %w", err)
		}
		folders = fs
	}

	// A highlight cannot survive its zone being replaced
	e.pulse.Stop()
	if e.session != nil {
		e.session.setHighlight(0, false)
	}

	w, h := e.host.CurrentScreenSize()
	ids := make([]int64, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	e.zones = zone.Bind(e.tuning.Layout.Layout(len(folders), w, h), ids)
	e.folders = folders
	e.statZones.Store(int64(len(e.zones)))

	e.log.Debug("layout", "zones", len(e.zones), "width", w, "height", h)
	return e.host.RequestRedraw()
}

// Resize re-clamps the token and lays zones out for the new screen
func (e *Engine) Resize() error {
	if err := e.ctrl.Reclamp(); err != nil {
		return err
	}
	return e.Relayout()
}

// SetTuning swaps behavioral constants; gesture thresholds apply from the next gesture
func (e *Engine) SetTuning(t Tuning) error {
	e.tuning = t
	e.machine.SetThresholds(t.DragThreshold, t.TapWindowMs)
	e.ctrl.SetTokenSize(t.TokenWidth, t.TokenHeight)
	e.hit = magnet.New(t.Magnet)
	e.snapper.SetParams(t.Snap)

	pulsing := e.pulse.Active()
	e.pulse.Stop()
	e.pulse = magnet.NewPulse(e.sched, t.PulsePeriod, t.PulsePeak)
	if pulsing && e.session != nil {
		e.session.setHighlight(0, false)
	}
	return e.Resize()
}

// TokenContains reports whether p falls on the drawn token
// Hosts use it to decide whether a press grabs the token
func (e *Engine) TokenContains(p vmath.Vec2) bool {
	pos := e.ctrl.Rendered()
	w, h := e.ctrl.TokenSize()
	return p.X >= float64(pos.X) && p.X < float64(pos.X+w) &&
		p.Y >= float64(pos.Y) && p.Y < float64(pos.Y+h)
}

// PointerDown feeds a press to the classifier
func (e *Engine) PointerDown(s input.PointerSample) {
	e.downAt = vmath.V(s.X, s.Y)
	e.dispatch(e.machine.OnPointerDown(s))
}

// PointerMove feeds a move to the classifier
func (e *Engine) PointerMove(s input.PointerSample) {
	e.dispatch(e.machine.OnPointerMove(s))
}

// PointerUp feeds a release to the classifier
func (e *Engine) PointerUp(s input.PointerSample) {
	e.dispatch(e.machine.OnPointerUp(s))
}

func (e *Engine) dispatch(intents []input.Intent) {
	for _, in := range intents {
		switch in.Type {
		case input.IntentTap:
			e.onTap()
		case input.IntentDragStart:
			e.onDragStart()
		case input.IntentDragMove:
			if !e.onDragMove(in) {
				// Drag aborted; remaining intents belong to a dead gesture
				return
			}
		case input.IntentDragEnd:
			e.onDragEnd()
		}
	}
}

func (e *Engine) onTap() {
	e.statTaps.Add(1)
	e.log.Debug("tap")
	if e.cb.OnTap != nil {
		e.cb.OnTap()
	}
}

func (e *Engine) onDragStart() {
	// Grabbing the token stops it sliding to the edge
	e.snapper.Cancel()

	pos := e.ctrl.Position()
	e.session = &DragSession{
		StartPosition: pos,
		PointerOffset: e.downAt.Sub(vmath.V(float64(pos.X), float64(pos.Y))),
	}
	e.statDragStarts.Add(1)
	e.statDragging.Store(true)
	e.log.Debug("drag start", "x", pos.X, "y", pos.Y)

	if e.cb.OnDragStateChanged != nil {
		e.cb.OnDragStateChanged(true)
	}
}

// onDragMove returns false when the host failed and the drag was aborted
func (e *Engine) onDragMove(in input.Intent) bool {
	if e.session == nil {
		return true
	}
	pointer := vmath.V(in.X, in.Y)
	res := e.hit.Update(pointer, e.zones)

	// Attraction only shifts where the token is drawn
	e.ctrl.SetPresentationOffset(res.Adjusted.Sub(pointer))
	if _, err := e.ctrl.ApplyDelta(in.DX, in.DY); err != nil {
		e.abortDrag(err)
		return false
	}

	e.session.setHighlight(res.HighlightedID, res.HasHighlight())
	if res.HasHighlight() {
		id := res.HighlightedID
		e.pulse.Start(id, func(scale float64) { e.setZoneScale(id, scale) })
	} else {
		e.pulse.Stop()
	}
	return true
}

func (e *Engine) onDragEnd() {
	if e.session == nil {
		return
	}
	id, dropped := e.session.Highlighted()
	e.closeSession()

	if err := e.ctrl.Reclamp(); err != nil {
		e.statHostFailures.Add(1)
		e.log.Warn("host failed at drag end", "error", err)
		e.notifyDragState(false)
		return
	}

	if dropped {
		e.statDrops.Add(1)
		e.log.Info("drop", "zone", id)
		if e.cb.OnDrop != nil {
			e.cb.OnDrop(id)
		}
	} else {
		e.startSnap()
	}
	e.notifyDragState(false)
}

// abortDrag treats a host failure as terminal for the current drag: no drop is attempted
func (e *Engine) abortDrag(err error) {
	e.statHostFailures.Add(1)
	e.log.Warn("host failed mid-drag, aborting", "error", err)
	e.machine.Reset()
	e.closeSession()
	e.notifyDragState(false)
}

// closeSession drops the session and every highlight artifact
func (e *Engine) closeSession() {
	e.session = nil
	e.pulse.Stop()
	for i := range e.zones {
		e.zones[i].IsHighlighted = false
		e.zones[i].Scale = 1
	}
	e.ctrl.SetPresentationOffset(vmath.Vec2{})
	e.statDragging.Store(false)
}

func (e *Engine) notifyDragState(dragging bool) {
	if e.cb.OnDragStateChanged != nil {
		e.cb.OnDragStateChanged(dragging)
	}
}

func (e *Engine) startSnap() {
	w, _ := e.host.CurrentScreenSize()
	tw, _ := e.ctrl.TokenSize()
	x := e.ctrl.Position().X
	e.statSnaps.Add(1)
	e.log.Debug("edge snap", "from", x, "to", snap.Target(x, w, tw))

	e.snapper.Start(x, w, tw, func(nx int) {
		if err := e.ctrl.SetX(nx); err != nil {
			e.statHostFailures.Add(1)
			e.log.Warn("host failed during edge snap", "error", err)
			e.snapper.Cancel()
		}
	})
}

// setZoneScale is the pulse callback
func (e *Engine) setZoneScale(id int64, scale float64) {
	idx := zone.IndexOf(e.zones, id)
	if idx < 0 {
		return
	}
	e.zones[idx].Scale = scale
	if err := e.host.RequestRedraw(); err != nil && e.session != nil {
		e.abortDrag(err)
	}
}

// Stop cancels running animations; used on shutdown
func (e *Engine) Stop() {
	e.snapper.Cancel()
	e.pulse.Stop()
}

// Position returns the logical token position
func (e *Engine) Position() overlay.TokenPosition { return e.ctrl.Position() }

// Rendered returns where the token is drawn, including attraction
func (e *Engine) Rendered() overlay.TokenPosition { return e.ctrl.Rendered() }

// TokenSize returns the token's pixel size
func (e *Engine) TokenSize() (int, int) { return e.ctrl.TokenSize() }

// Zones returns a copy of the current zones with highlight flags
func (e *Engine) Zones() []zone.DropZone {
	out := make([]zone.DropZone, len(e.zones))
	copy(out, e.zones)
	return out
}

// Folders returns the folders bound to the current zones, in zone order
func (e *Engine) Folders() []Folder {
	out := make([]Folder, len(e.folders))
	copy(out, e.folders)
	return out
}

// Session returns the active drag session
func (e *Engine) Session() (DragSession, bool) {
	if e.session == nil {
		return DragSession{}, false
	}
	return *e.session, true
}

// State returns the classifier state
func (e *Engine) State() input.GestureState { return e.machine.State() }

// Snapping reports whether an edge snap is running
func (e *Engine) Snapping() bool { return e.snapper.Active() }
