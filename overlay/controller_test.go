package overlay_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/overlay/overlaytest"
	"github.com/lixenwraith/shotdrop/vmath"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   overlay.TokenPosition
		want overlay.TokenPosition
	}{
		{"inside", overlay.TokenPosition{X: 10, Y: 20}, overlay.TokenPosition{X: 10, Y: 20}},
		{"negative", overlay.TokenPosition{X: -5, Y: -100}, overlay.TokenPosition{X: 0, Y: 0}},
		{"past far edge", overlay.TokenPosition{X: 1000, Y: 1000}, overlay.TokenPosition{X: 310, Y: 700}},
		{"mixed", overlay.TokenPosition{X: -1, Y: 701}, overlay.TokenPosition{X: 0, Y: 700}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlay.Clamp(tt.in, 400, 800, 90, 100))
		})
	}
}

func TestClampTokenLargerThanScreen(t *testing.T) {
	got := overlay.Clamp(overlay.TokenPosition{X: 50, Y: 50}, 40, 40, 90, 90)
	assert.Equal(t, overlay.TokenPosition{}, got)
}

func TestApplyDeltaNotifiesHostOncePerMove(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(100, 100))

	pos, err := c.ApplyDelta(15, -20)
	require.NoError(t, err)
	assert.Equal(t, overlay.TokenPosition{X: 115, Y: 80}, pos)
	assert.Equal(t, pos, host.Last())
	assert.Equal(t, 2, host.Redraws, "one redraw for initialize, one per move")
}

func TestApplyDeltaSaturates(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(0, 0))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		dx := (rng.Float64() - 0.3) * 500
		dy := (rng.Float64() - 0.7) * 500
		pos, err := c.ApplyDelta(dx, dy)
		require.NoError(t, err)
		require.GreaterOrEqual(t, pos.X, 0)
		require.LessOrEqual(t, pos.X, 310)
		require.GreaterOrEqual(t, pos.Y, 0)
		require.LessOrEqual(t, pos.Y, 700)
	}
}

func TestSaturationDoesNotAccumulateOvershoot(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(0, 0))

	for i := 0; i < 100; i++ {
		_, _ = c.ApplyDelta(1000, 0)
	}
	pos, err := c.ApplyDelta(-10, 0)
	require.NoError(t, err)
	assert.Equal(t, 300, pos.X, "a move back from the edge responds immediately")
}

func TestPresentationOffsetDoesNotMoveLogicalPosition(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(100, 100))

	c.SetPresentationOffset(vmath.V(12, -7))
	pos, err := c.ApplyDelta(0, 0)
	require.NoError(t, err)

	assert.Equal(t, overlay.TokenPosition{X: 100, Y: 100}, pos)
	assert.Equal(t, overlay.TokenPosition{X: 112, Y: 93}, c.Rendered())
	assert.Equal(t, c.Rendered(), host.Last())

	c.SetPresentationOffset(vmath.Vec2{})
	require.NoError(t, c.Reclamp())
	assert.Equal(t, overlay.TokenPosition{X: 100, Y: 100}, host.Last())
}

func TestHostFailureIsReturned(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	host.FailAfter = 1
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(10, 10))

	_, err := c.ApplyDelta(5, 5)
	assert.ErrorIs(t, err, overlaytest.ErrRemoved)
}

func TestResizeReclamps(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(300, 650))

	host.Width, host.Height = 200, 300
	require.NoError(t, c.Reclamp())
	assert.Equal(t, overlay.TokenPosition{X: 110, Y: 200}, c.Position())
}

func TestSetXAndCenter(t *testing.T) {
	host := overlaytest.NewHost(400, 800)
	c := overlay.NewController(host, 90, 100)
	require.NoError(t, c.Initialize(50, 50))
	require.NoError(t, c.SetX(310))
	assert.Equal(t, 310, c.Position().X)
	assert.Equal(t, vmath.V(355, 100), c.Center())

	w, h := c.TokenSize()
	assert.Equal(t, 90, w)
	assert.Equal(t, 100, h)
}
