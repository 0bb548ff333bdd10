package host

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/vmath"
	"github.com/lixenwraith/shotdrop/zone"
)

var testScale = Scale{CellWidth: 8, CellHeight: 16}

func newSimTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim, testScale)
	require.NoError(t, term.Init())
	sim.SetSize(cols, rows)
	t.Cleanup(term.Close)
	return term, sim
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestScale(t *testing.T) {
	assert.Equal(t, vmath.V(4, 8), testScale.CellCenter(0, 0))
	assert.Equal(t, vmath.V(84, 40), testScale.CellCenter(10, 2))

	cx, cy := testScale.ToCell(vmath.V(84, 40))
	assert.Equal(t, 10, cx)
	assert.Equal(t, 2, cy)
	cx, cy = testScale.ToCell(vmath.V(-1, -1))
	assert.Equal(t, -1, cx)
	assert.Equal(t, -1, cy)

	w, h := testScale.Pixels(80, 24)
	assert.Equal(t, 640, w)
	assert.Equal(t, 384, h)

	w, h = Scale{}.Pixels(3, 4)
	assert.Equal(t, 3, w, "zero scale treated as 1x1")
	assert.Equal(t, 4, h)
}

func TestMouseTracker(t *testing.T) {
	m := NewMouseTracker(testScale)
	m.SetTimestampSource(func(*tcell.EventMouse) int64 { return 5000 })
	ev := func(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
		return tcell.NewEventMouse(x, y, b, tcell.ModNone)
	}

	_, _, ok := m.Translate(ev(1, 1, tcell.ButtonNone))
	assert.False(t, ok, "hover is ignored")

	kind, s, ok := m.Translate(ev(2, 3, tcell.Button1))
	require.True(t, ok)
	assert.Equal(t, PointerDown, kind)
	assert.Equal(t, input.PointerSample{X: 20, Y: 56, TimestampMs: 5000}, s)
	assert.True(t, m.Down())

	kind, _, ok = m.Translate(ev(4, 3, tcell.Button1))
	require.True(t, ok)
	assert.Equal(t, PointerMove, kind)

	kind, _, ok = m.Translate(ev(4, 3, tcell.ButtonNone))
	require.True(t, ok)
	assert.Equal(t, PointerUp, kind)
	assert.False(t, m.Down())

	_, _, ok = m.Translate(ev(4, 3, tcell.Button2))
	assert.False(t, ok, "other buttons are ignored")
}

func TestMouseTrackerStampsEventTime(t *testing.T) {
	m := NewMouseTracker(testScale)
	before := time.Now().UnixMilli()
	_, s, ok := m.Translate(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	after := time.Now().UnixMilli()

	require.True(t, ok)
	assert.GreaterOrEqual(t, s.TimestampMs, before)
	assert.LessOrEqual(t, s.TimestampMs, after)

	m.SetTimestampSource(func(*tcell.EventMouse) int64 { return 7 })
	_, s, _ = m.Translate(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, int64(7), s.TimestampMs)

	m.SetTimestampSource(nil)
	_, s, _ = m.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	assert.GreaterOrEqual(t, s.TimestampMs, before)
}

func TestTerminalSizeExcludesStatusRow(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 21)
	w, h := term.CurrentScreenSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 320, h)
}

func TestFlushDrawsScene(t *testing.T) {
	term, sim := newSimTerminal(t, 40, 21)

	z := zone.DropZone{ID: 1, CenterX: 160, CenterY: 80, Radius: 40, PetalCount: 8, PetalDepth: 0.18, Scale: 1}
	term.SetScene(func() Scene {
		return Scene{
			Zones:       []zone.DropZone{z},
			Labels:      []string{"W"},
			Token:       term.Token(),
			TokenWidth:  16,
			TokenHeight: 32,
			Status:      "zones=1",
		}
	})

	require.NoError(t, term.UpdateOverlayPosition(80, 160))
	term.Flush()
	assert.Equal(t, 1, term.Frames())

	assert.Equal(t, tokenRune, runeAt(sim, 10, 10))
	assert.Equal(t, tokenRune, runeAt(sim, 11, 11))
	assert.NotEqual(t, tokenRune, runeAt(sim, 12, 10))

	assert.Equal(t, 'W', runeAt(sim, 20, 5), "label at zone center")
	assert.Equal(t, petalRune, runeAt(sim, 18, 5))
	assert.NotEqual(t, petalRune, runeAt(sim, 30, 5))

	assert.Equal(t, 'z', runeAt(sim, 1, 20), "status on the last row")

	term.Flush()
	assert.Equal(t, 1, term.Frames(), "clean frames are skipped")
}

func TestHighlightedZoneUsesHotRune(t *testing.T) {
	term, sim := newSimTerminal(t, 40, 21)
	z := zone.DropZone{ID: 1, CenterX: 160, CenterY: 80, Radius: 40, PetalCount: 8, PetalDepth: 0.18, Scale: 1, IsHighlighted: true}
	term.SetScene(func() Scene { return Scene{Zones: []zone.DropZone{z}} })

	require.NoError(t, term.RequestRedraw())
	term.Flush()
	assert.Equal(t, hotRune, runeAt(sim, 18, 5))
}

func TestClosedTerminalRejectsUpdates(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 21)
	term.Close()
	term.Close()

	assert.ErrorIs(t, term.UpdateOverlayPosition(1, 1), ErrClosed)
	assert.ErrorIs(t, term.RequestRedraw(), ErrClosed)

	var h overlay.WindowHost = term
	c := overlay.NewController(h, 10, 10)
	assert.ErrorIs(t, c.Initialize(0, 0), ErrClosed)
}

func TestDispatch(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 21)

	var kinds []PointerKind
	quits, resizes, keys := 0, 0, 0
	h := Handler{
		Pointer: func(k PointerKind, _ input.PointerSample) { kinds = append(kinds, k) },
		Resize:  func() { resizes++ },
		Key:     func(*tcell.EventKey) { keys++ },
		Quit:    func() { quits++ },
	}

	term.dispatch(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone), h)
	term.dispatch(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone), h)
	term.dispatch(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone), h)
	term.dispatch(tcell.NewEventResize(50, 30), h)
	term.dispatch(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), h)
	term.dispatch(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), h)
	term.dispatch(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), h)

	assert.Equal(t, []PointerKind{PointerDown, PointerMove, PointerUp}, kinds)
	assert.Equal(t, 1, resizes)
	assert.Equal(t, 1, keys)
	assert.Equal(t, 2, quits)
}
