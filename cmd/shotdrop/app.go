package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shotdrop/audio"
	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/config"
	"github.com/lixenwraith/shotdrop/core"
	"github.com/lixenwraith/shotdrop/engine"
	"github.com/lixenwraith/shotdrop/host"
	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/service"
	"github.com/lixenwraith/shotdrop/status"
	"github.com/lixenwraith/shotdrop/store"
	"github.com/lixenwraith/shotdrop/vmath"
	"github.com/lixenwraith/shotdrop/watcher"
)

// App wires the engine to its terminal host and infrastructure
// Fields below the loop are owned by the loop goroutine once Run starts
type App struct {
	cfg    *config.Config
	loader *config.Loader
	log    *slog.Logger
	stats  *status.Registry
	hub    *service.Hub
	seeds  []folderArg

	store *store.Store
	watch *watcher.Watcher
	cues  *audio.Cues
	term  *host.Terminal
	loop  *clock.Loop
	sched clock.Scheduler
	eng   *engine.Engine
	ctx   context.Context

	queue   captureQueue
	grabbed bool
	dropped bool

	// filings tracks store.File calls running off the loop; the store outlives them
	filings sync.WaitGroup

	statCaptures     *atomic.Int64
	statFilings      *atomic.Int64
	statFilingErrors *atomic.Int64
}

// NewApp builds every component; nothing touches the terminal until Run
func NewApp(cfg *config.Config, loader *config.Loader, log *slog.Logger, seeds []folderArg) (*App, error) {
	term, err := host.New(host.Scale{CellWidth: cfg.Host.CellWidth, CellHeight: cfg.Host.CellHeight})
	if err != nil {
		return nil, err
	}
	loop := clock.NewLoop(0)
	a := assemble(cfg, loader, log, seeds, term, loop, clock.NewTickerScheduler(loop, clock.NewMonotonicTimeProvider()))
	if err := a.registerServices(); err != nil {
		return nil, err
	}
	return a, nil
}

// assemble connects the app to a host and scheduler without starting anything
func assemble(cfg *config.Config, loader *config.Loader, log *slog.Logger, seeds []folderArg,
	term *host.Terminal, loop *clock.Loop, sched clock.Scheduler) *App {
	stats := status.NewRegistry()
	a := &App{
		cfg:    cfg,
		loader: loader,
		log:    log,
		stats:  stats,
		hub:    service.NewHub(log.With("component", "hub")),
		seeds:  seeds,
		cues:   audio.NewCues(cfg.Audio.Enabled, cfg.Audio.Volume),
		term:   term,
		loop:   loop,
		sched:  sched,
		ctx:    context.Background(),

		statCaptures:     stats.Int(status.Captures),
		statFilings:      stats.Int(status.Filings),
		statFilingErrors: stats.Int(status.FilingErrors),
	}
	loop.SetAfter(term.Flush)
	term.SetScene(a.scene)
	return a
}

// Run starts services and processes events until quit or ctx cancellation
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	if err := a.hub.StartAll(ctx); err != nil {
		return err
	}
	defer a.hub.StopAll()

	a.term.Listen(a.loop, host.Handler{
		Pointer: a.onPointer,
		Resize:  a.onResize,
		Key:     a.onKey,
		Quit:    a.loop.Stop,
	})
	a.log.Info("running", "capture_dir", a.cfg.Paths.CaptureDir, "zones", len(a.eng.Zones()))

	err := a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) newEngine() error {
	eng, err := engine.New(engine.Options{
		Host:      a.term,
		Scheduler: a.sched,
		Folders:   engine.FolderSourceFunc(a.listFolders),
		Callbacks: engine.Callbacks{
			OnTap:              a.onTap,
			OnDrop:             a.onDrop,
			OnDragStateChanged: a.onDragState,
		},
		Tuning: a.cfg.Tuning(),
		Status: a.stats,
		Logger: a.log,
	})
	if err != nil {
		return err
	}
	a.eng = eng

	// Park the token on the right edge, a third of the way down
	w, h := a.term.CurrentScreenSize()
	return eng.Start(w-a.cfg.Token.Width, h/3)
}

// listFolders adapts the store to the engine's folder source
func (a *App) listFolders() ([]engine.Folder, error) {
	fs, err := a.store.ListFolders(a.ctx)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Folder, len(fs))
	for i, f := range fs {
		out[i] = engine.Folder{ID: f.ID, DisplayName: f.DisplayName}
	}
	return out, nil
}

// onPointer forwards a gesture only when it begins on the token
func (a *App) onPointer(kind host.PointerKind, s input.PointerSample) {
	switch kind {
	case host.PointerDown:
		if !a.eng.TokenContains(vmath.V(s.X, s.Y)) {
			return
		}
		a.grabbed = true
		a.eng.PointerDown(s)
	case host.PointerMove:
		if a.grabbed {
			a.eng.PointerMove(s)
		}
	case host.PointerUp:
		if a.grabbed {
			a.grabbed = false
			a.eng.PointerUp(s)
		}
	}
}

func (a *App) onResize() {
	if err := a.eng.Resize(); err != nil {
		a.log.Warn("resize failed", "error", err)
	}
}

func (a *App) onKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'n':
		a.queue.Rotate()
		a.redraw()
	case 'r':
		if err := a.eng.Relayout(); err != nil {
			a.log.Warn("relayout failed", "error", err)
		}
	}
}

// onTap shows the next waiting capture
func (a *App) onTap() {
	a.queue.Rotate()
	a.cues.Play(audio.CueTap)
	a.redraw()
}

func (a *App) onDragState(dragging bool) {
	if dragging {
		a.dropped = false
		return
	}
	if !a.dropped {
		a.cues.Play(audio.CueSnap)
	}
}

// onDrop files the head capture off the loop and posts the outcome back
func (a *App) onDrop(folderID int64) {
	a.dropped = true
	c, ok := a.queue.Pop()
	if !ok {
		a.log.Info("drop with no capture waiting", "folder", folderID)
		a.cues.Play(audio.CueError)
		return
	}
	a.cues.Play(audio.CueDrop)

	ctx, st := a.ctx, a.store
	a.filings.Add(1)
	core.Go(func() {
		defer a.filings.Done()
		filing, err := st.File(ctx, folderID, c.Path)
		a.loop.Post(func() { a.onFiled(c, filing, err) })
	})
}

func (a *App) onFiled(c watcher.Capture, f store.Filing, err error) {
	if err != nil {
		a.statFilingErrors.Add(1)
		a.log.Error("filing failed", "path", c.Path, "error", err)
		a.cues.Play(audio.CueError)
		if !errors.Is(err, os.ErrNotExist) {
			a.queue.Requeue(c)
		}
		a.redraw()
		return
	}
	a.statFilings.Add(1)
	a.stats.SetLabel("store.last", filepath.Base(f.DestPath))
	a.log.Info("filed", "id", f.ID, "from", f.SourcePath, "to", f.DestPath)
	a.redraw()
}

func (a *App) onCapture(c watcher.Capture) {
	if !a.queue.Push(c) {
		return
	}
	a.statCaptures.Add(1)
	a.log.Debug("capture queued", "path", c.Path, "size", c.Size)
	a.cues.Play(audio.CueCapture)
	a.redraw()
}

func (a *App) onConfig(cfg *config.Config) {
	a.cfg.Gesture, a.cfg.Layout, a.cfg.Magnet = cfg.Gesture, cfg.Layout, cfg.Magnet
	a.cfg.Snap, a.cfg.Token, a.cfg.Audio = cfg.Snap, cfg.Token, cfg.Audio
	a.cues.SetVolume(cfg.Audio.Volume)
	if err := a.eng.SetTuning(cfg.Tuning()); err != nil {
		a.log.Warn("apply reloaded config", "error", err)
		return
	}
	a.log.Info("config reloaded")
}

func (a *App) redraw() {
	if err := a.term.RequestRedraw(); err != nil {
		a.log.Debug("redraw", "error", err)
	}
}

// scene snapshots engine state for the terminal; runs on the loop
func (a *App) scene() host.Scene {
	folders := a.eng.Folders()
	labels := make([]string, len(folders))
	for i, f := range folders {
		labels[i] = f.DisplayName
	}
	w, h := a.eng.TokenSize()
	_, dragging := a.eng.Session()

	return host.Scene{
		Zones:       a.eng.Zones(),
		Labels:      labels,
		Token:       a.eng.Rendered(),
		TokenWidth:  w,
		TokenHeight: h,
		TokenLabel:  fmt.Sprintf("%d", a.queue.Len()),
		Dragging:    dragging,
		Empty:       a.queue.Len() == 0,
		Status: fmt.Sprintf("%s  next=%s  q:quit n:next r:reload",
			a.stats.Format(" ", status.Captures, status.Filings, status.Drops, status.Snaps, status.FilingErrors),
			a.queue.HeadName()),
	}
}
