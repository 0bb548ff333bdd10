package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarConvention(t *testing.T) {
	c := V(100, 100)
	tests := []struct {
		angle float64
		want  Vec2
	}{
		{0, V(110, 100)},
		{90, V(100, 110)},
		{180, V(90, 100)},
		{270, V(100, 90)},
	}
	for _, tt := range tests {
		got := Polar(c, 10, tt.angle)
		assert.Truef(t, got.Near(tt.want, 1e-9), "Polar(%v) = %v, want %v", tt.angle, got, tt.want)
		assert.InDelta(t, math.Mod(tt.angle, 360), AngleDeg(c, got), 1e-9)
	}
}

func TestDistance(t *testing.T) {
	a, b := V(0, 0), V(3, 4)
	assert.Equal(t, 25.0, DistSq(a, b))
	assert.Equal(t, 5.0, Dist(a, b))
	assert.Equal(t, V(1.5, 2), Lerp(a, b, 0.5))
}

func TestCircleContainsMargin(t *testing.T) {
	c := V(0, 0)
	assert.True(t, CircleContains(c, 10, 1.0, V(10, 0)))
	assert.False(t, CircleContains(c, 10, 1.0, V(10.5, 0)))
	assert.True(t, CircleContains(c, 10, 1.1, V(10.5, 0)))
	assert.True(t, CircleContains(c, 10, 1.1, V(10.9, 0)))
	assert.False(t, CircleContains(c, 10, 1.1, V(11.2, 0)))
}

func TestInRingExclusive(t *testing.T) {
	c := V(0, 0)
	assert.False(t, InRing(c, 10, 25, V(10, 0)))
	assert.True(t, InRing(c, 10, 25, V(12, 0)))
	assert.False(t, InRing(c, 10, 25, V(25, 0)))
}

func TestPetalOutline(t *testing.T) {
	c := V(50, 50)
	pts := PetalOutline(c, 20, 6, 0.25)
	require.Len(t, pts, 12)

	for i, p := range pts {
		want := 20.0
		if i%2 == 1 {
			want = 15.0
		}
		assert.InDelta(t, want, Dist(c, p), 1e-9, "vertex %d", i)
	}
	assert.True(t, pts[0].Near(V(50, 30), 1e-9), "first tip points up")

	assert.Len(t, PetalOutline(c, 20, 1, 0.2), 6, "petal count floors at 3")
}

func TestPolygonContains(t *testing.T) {
	c := V(0, 0)
	pts := PetalOutline(c, 20, 8, 0.3)
	assert.True(t, PolygonContains(pts, c))
	assert.True(t, PolygonContains(pts, V(0, -19)), "inside a tip")
	assert.False(t, PolygonContains(pts, V(25, 0)))
	assert.False(t, PolygonContains(pts[:2], c), "degenerate polygon")
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.Equal(t, 1.0, EaseOutCubic(2))
	assert.Greater(t, EaseOutCubic(0.5), 0.5, "ease-out runs ahead of linear")

	prev := 0.0
	for i := 1; i <= 20; i++ {
		v := EaseOutCubic(float64(i) / 20)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, ClampInt(7, 0, 5))
	assert.Equal(t, 0, ClampInt(-3, 0, 5))
	assert.Equal(t, 0, ClampInt(3, 0, -10), "inverted range pins to lo")
	assert.Equal(t, 2.5, Clamp(2.5, 0, 5))
}

func TestOscillate(t *testing.T) {
	assert.InDelta(t, 0.0, Oscillate(0, 600), 1e-9)
	assert.InDelta(t, 1.0, Oscillate(300, 600), 1e-9)
	assert.InDelta(t, 0.0, Oscillate(600, 600), 1e-9)
	assert.Equal(t, 0.0, Oscillate(100, 0))
}
