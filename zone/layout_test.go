package zone

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/shotdrop/vmath"
)

var testScreens = [][2]int{
	{1080, 1920}, // Portrait phone
	{1920, 1080}, // Landscape desktop
	{640, 384},   // 80x24 terminal at 8x16 px cells
	{400, 800},
}

func TestLayoutInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		zones := Layout(n, 1080, 1920)
		assert.NotNil(t, zones)
		assert.Empty(t, zones)
	}
}

func TestLayoutSingleZoneCentered(t *testing.T) {
	for _, s := range testScreens {
		zones := Layout(1, s[0], s[1])
		require.Len(t, zones, 1)
		assert.Equal(t, float64(s[0])/2, zones[0].CenterX)
		assert.Less(t, zones[0].CenterY, float64(s[1]), "above the bottom edge")
	}
}

func TestLayoutSingleZoneOffset(t *testing.T) {
	p := DefaultParams()
	p.SingleZoneOffset = 150
	zones := p.Layout(1, 1080, 1920)
	require.Len(t, zones, 1)
	assert.Equal(t, 1770.0, zones[0].CenterY)
}

func TestLayoutSingleZoneStaysOnScreen(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		radius float64
		offset float64
	}{
		{"offset below half radius", 1080, 1920, 0, 10},
		{"offset above screen", 1080, 1920, 0, 5000},
		{"one pixel screen", 1, 1, 0, 0},
		{"radius larger than screen", 300, 200, 400, 0},
		{"narrow screen", 50, 900, 120, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.ZoneRadius = tt.radius
			p.SingleZoneOffset = tt.offset
			zones := p.Layout(1, tt.w, tt.h)
			require.Len(t, zones, 1)

			z := zones[0]
			w, h := float64(tt.w), float64(tt.h)
			half := z.Radius / 2
			assert.Greater(t, z.Radius, 0.0)
			assert.Equal(t, w/2, z.CenterX)
			assert.GreaterOrEqual(t, z.CenterX, half)
			assert.LessOrEqual(t, z.CenterX, w-half)
			assert.GreaterOrEqual(t, z.CenterY, half)
			assert.LessOrEqual(t, z.CenterY, h-half)
		})
	}
}

func TestArcSpan(t *testing.T) {
	tests := []struct {
		n    int
		span float64
	}{
		{2, 150}, {5, 150}, {8, 150},
		{10, 202.5}, {12, 255}, {14, 307.5},
		{16, 360}, {24, 360},
	}
	for _, tt := range tests {
		assert.InDeltaf(t, tt.span, ArcSpan(tt.n), 1e-9, "n=%d", tt.n)
	}
	assert.Equal(t, 0.0, TransitionFactor(3))
	assert.Equal(t, 0.5, TransitionFactor(12))
	assert.Equal(t, 1.0, TransitionFactor(40))
}

func TestLayoutSmallCountsStayOnBottomArc(t *testing.T) {
	for _, s := range testScreens {
		center := vmath.V(float64(s[0])/2, float64(s[1])*0.75)
		for n := 2; n <= 8; n++ {
			zones := Layout(n, s[0], s[1])
			require.Len(t, zones, n)
			for i, z := range zones {
				a := vmath.AngleDeg(center, z.Center())
				assert.GreaterOrEqualf(t, a, 15.0-1e-6, "screen %v n=%d zone %d angle %v", s, n, i, a)
				assert.LessOrEqualf(t, a, 165.0+1e-6, "screen %v n=%d zone %d angle %v", s, n, i, a)
				assert.InDelta(t, z.Angle, a, 1e-6)
			}
		}
	}
}

func TestLayoutSixteenIsFullRing(t *testing.T) {
	zones := Layout(16, 1080, 1920)
	require.Len(t, zones, 16)

	assert.Equal(t, 360.0, ArcSpan(16))
	for i := 1; i < len(zones); i++ {
		diff := normalizeAngle(zones[i].Angle - zones[i-1].Angle)
		assert.InDelta(t, 22.5, diff, 1e-9)
	}
	// Wrap-around gap equals the step on a closed ring
	wrap := normalizeAngle(zones[0].Angle - zones[15].Angle)
	assert.InDelta(t, 22.5, wrap, 1e-9)
}

func TestLayoutNoOverlap(t *testing.T) {
	for _, s := range testScreens {
		for _, n := range []int{1, 2, 4, 8, 12, 16} {
			t.Run(fmt.Sprintf("%dx%d/n=%d", s[0], s[1], n), func(t *testing.T) {
				zones := Layout(n, s[0], s[1])
				require.Len(t, zones, n)
				for i := 0; i < n; i++ {
					for j := i + 1; j < n; j++ {
						d := vmath.Dist(zones[i].Center(), zones[j].Center())
						minGap := zones[i].Radius + zones[j].Radius
						assert.GreaterOrEqualf(t, d, minGap-1e-9, "zones %d and %d overlap", i, j)
					}
				}
			})
		}
	}
}

func TestLayoutKeepsZonesOnScreen(t *testing.T) {
	for _, s := range testScreens {
		w, h := float64(s[0]), float64(s[1])
		for n := 1; n <= 24; n++ {
			for i, z := range Layout(n, s[0], s[1]) {
				half := z.Radius / 2
				assert.Truef(t, z.CenterX >= half && z.CenterX <= w-half && z.CenterY >= half && z.CenterY <= h-half,
					"screen %v n=%d zone %d at (%.1f,%.1f) r=%.1f exceeds overhang", s, n, i, z.CenterX, z.CenterY, z.Radius)
			}
		}
	}
}

func TestLayoutZoneShape(t *testing.T) {
	for _, n := range []int{1, 3, 9, 20} {
		for _, z := range Layout(n, 1080, 1920) {
			assert.Greater(t, z.Radius, 0.0)
			assert.GreaterOrEqual(t, z.PetalCount, 3)
			assert.GreaterOrEqual(t, z.PetalDepth, 0.0)
			assert.LessOrEqual(t, z.PetalDepth, 1.0)
			assert.Equal(t, 1.0, z.Scale)
		}
	}
}

func TestLayoutDegenerateScreen(t *testing.T) {
	zones := Layout(5, 0, -20)
	require.Len(t, zones, 5)
	for _, z := range zones {
		assert.False(t, math.IsNaN(z.CenterX) || math.IsNaN(z.CenterY))
		assert.Greater(t, z.Radius, 0.0)
	}
}

func TestParamsNormalize(t *testing.T) {
	p := Params{PetalCount: 1, PetalDepth: 3}
	zones := p.Layout(3, 1080, 1920)
	require.Len(t, zones, 3)
	assert.Equal(t, 8, zones[0].PetalCount)
	assert.Equal(t, 1.0, zones[0].PetalDepth)
}

func TestBind(t *testing.T) {
	zones := Bind(Layout(3, 1080, 1920), []int64{42, 7})
	assert.Equal(t, int64(42), zones[0].ID)
	assert.Equal(t, int64(7), zones[1].ID)
	assert.Equal(t, int64(0), zones[2].ID)
	assert.Equal(t, 1, IndexOf(zones, 7))
	assert.Equal(t, -1, IndexOf(zones, 99))
}

func TestOutlineFollowsScale(t *testing.T) {
	z := Layout(1, 1080, 1920)[0]
	z.Scale = 1.05
	pts := z.Outline()
	require.Len(t, pts, z.PetalCount*2)
	assert.InDelta(t, z.Radius*1.05, vmath.Dist(z.Center(), pts[0]), 1e-9)
}
