// Package host runs the engine in a terminal: tcell provides the screen and
// mouse, cells are mapped to an engine pixel space
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/core"
	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/overlay"
)

// ErrClosed is returned by window operations after the screen is gone
var ErrClosed = errors.New("terminal closed")

// Handler receives terminal input on the event loop; nil entries are skipped
type Handler struct {
	Pointer func(kind PointerKind, s input.PointerSample)
	Resize  func()
	Key     func(ev *tcell.EventKey)
	Quit    func()
}

// Terminal is an overlay.WindowHost backed by a tcell screen
// Window methods run on the event loop; Close may come from any goroutine
type Terminal struct {
	screen tcell.Screen
	scale  Scale
	mouse  *MouseTracker

	mu     sync.Mutex
	closed bool

	token   overlay.TokenPosition
	dirty   bool
	scene   func() Scene
	frames  int
	started bool
}

var _ overlay.WindowHost = (*Terminal)(nil)

// New creates a terminal on the process tty
func New(scale Scale) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen, scale), nil
}

// NewWithScreen wraps an existing screen, e.g. tcell's simulation screen
func NewWithScreen(screen tcell.Screen, scale Scale) *Terminal {
	scale = scale.normalized()
	return &Terminal{
		screen: screen,
		scale:  scale,
		mouse:  NewMouseTracker(scale),
	}
}

// Init takes over the terminal and enables mouse reporting
// The crash handler restores the terminal if anything panics afterwards
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseDragEvents)
	t.screen.HideCursor()
	core.SetCrashFinisher(t.screen)

	t.mu.Lock()
	t.started = true
	t.mu.Unlock()
	return nil
}

// Scale returns the cell to pixel mapping
func (t *Terminal) Scale() Scale { return t.scale }

// SetScene installs the frame source used by Flush
func (t *Terminal) SetScene(fn func() Scene) { t.scene = fn }

// CurrentScreenSize returns the drawable area in pixels, excluding the status row
func (t *Terminal) CurrentScreenSize() (int, int) {
	cols, rows := t.screen.Size()
	return t.scale.Pixels(max(cols, 1), max(rows-1, 1))
}

// UpdateOverlayPosition records where the token is drawn
func (t *Terminal) UpdateOverlayPosition(x, y int) error {
	if t.isClosed() {
		return ErrClosed
	}
	t.token = overlay.TokenPosition{X: x, Y: y}
	t.dirty = true
	return nil
}

// RequestRedraw marks the frame dirty; Flush draws it
func (t *Terminal) RequestRedraw() error {
	if t.isClosed() {
		return ErrClosed
	}
	t.dirty = true
	return nil
}

// Token returns the last position received
func (t *Terminal) Token() overlay.TokenPosition { return t.token }

// Flush draws the scene if anything changed since the last frame
func (t *Terminal) Flush() {
	if !t.dirty || t.scene == nil || t.isClosed() {
		return
	}
	t.dirty = false
	Draw(t.screen, t.scene(), t.scale)
	t.screen.Show()
	t.frames++
}

// Frames returns the number of frames drawn
func (t *Terminal) Frames() int { return t.frames }

// Listen polls terminal events on a goroutine and posts them to the loop
// Returns after the poll goroutine has been launched
func (t *Terminal) Listen(poster clock.Poster, h Handler) {
	core.Go(func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			if !poster.Post(func() { t.dispatch(ev, h) }) {
				return
			}
		}
	})
}

// dispatch runs on the loop
func (t *Terminal) dispatch(ev tcell.Event, h Handler) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		kind, sample, ok := t.mouse.Translate(ev)
		if ok && h.Pointer != nil {
			h.Pointer(kind, sample)
		}

	case *tcell.EventResize:
		t.screen.Sync()
		t.dirty = true
		if h.Resize != nil {
			h.Resize()
		}

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			if h.Quit != nil {
				h.Quit()
			}
			return
		}
		if h.Key != nil {
			h.Key(ev)
		}
	}
}

func (t *Terminal) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Close restores the terminal; idempotent
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.started {
		core.SetCrashFinisher(nil)
		t.screen.Fini()
	}
}
