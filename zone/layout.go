package zone

import (
	"math"

	"github.com/lixenwraith/shotdrop/vmath"
)

// Arc span bounds in degrees
const (
	MinArcSpan = 150.0
	MaxArcSpan = 360.0

	// Zone counts at which the span starts and stops growing
	ArcGrowStart = 8
	ArcGrowEnd   = 16

	arcCenterAngle = 90.0 // Straight down
	shrinkFactor   = 0.92
	maxShrinkSteps = 64
)

// Params tunes the layout; zero fields fall back to DefaultParams values
type Params struct {
	ArcCenterYRatio float64 // Arc center Y as a fraction of screen height
	ArcRadiusRatio  float64 // Arc radius as a fraction of screen width

	// ZoneRadius is the preferred zone radius in pixels
	// Zero derives it from AutoRadiusRatio * min(width, height)
	ZoneRadius      float64
	AutoRadiusRatio float64

	PetalCount int
	PetalDepth float64

	// SingleZoneOffset is the distance of a lone zone's center above the bottom edge
	// Zero uses two radii
	SingleZoneOffset float64

	// MaxOverhang is the fraction of a zone radius allowed past a screen edge
	MaxOverhang float64
}

// DefaultParams returns the stock layout tuning
func DefaultParams() Params {
	return Params{
		ArcCenterYRatio: 0.75,
		ArcRadiusRatio:  0.4,
		AutoRadiusRatio: 0.1,
		PetalCount:      8,
		PetalDepth:      0.18,
		MaxOverhang:     0.5,
	}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.ArcCenterYRatio <= 0 {
		p.ArcCenterYRatio = d.ArcCenterYRatio
	}
	if p.ArcRadiusRatio <= 0 {
		p.ArcRadiusRatio = d.ArcRadiusRatio
	}
	if p.AutoRadiusRatio <= 0 {
		p.AutoRadiusRatio = d.AutoRadiusRatio
	}
	if p.PetalCount < 3 {
		p.PetalCount = d.PetalCount
	}
	p.PetalDepth = vmath.Clamp(p.PetalDepth, 0, 1)
	if p.MaxOverhang <= 0 || p.MaxOverhang > 1 {
		p.MaxOverhang = d.MaxOverhang
	}
	return p
}

// TransitionFactor is 0 up to ArcGrowStart zones, 1 from ArcGrowEnd, linear between
func TransitionFactor(count int) float64 {
	f := float64(count-ArcGrowStart) / float64(ArcGrowEnd-ArcGrowStart)
	return vmath.Clamp(f, 0, 1)
}

// ArcSpan returns the angular span in degrees used for count zones
func ArcSpan(count int) float64 {
	return MinArcSpan + (MaxArcSpan-MinArcSpan)*TransitionFactor(count)
}

// Layout places count zones on a screen with default tuning
func Layout(count, screenW, screenH int) []DropZone {
	return DefaultParams().Layout(count, screenW, screenH)
}

// Layout places count zones on the screen
// Invalid input degrades instead of failing: count <= 0 yields an empty list,
// screen dimensions are raised to at least 1 pixel
func (p Params) Layout(count, screenW, screenH int) []DropZone {
	if count <= 0 {
		return []DropZone{}
	}
	p = p.normalized()
	w := float64(max(screenW, 1))
	h := float64(max(screenH, 1))
	base := p.baseRadius(w, h)

	if count == 1 {
		return []DropZone{p.singleZone(w, h, base)}
	}

	span := ArcSpan(count)
	step := span / float64(count)
	center := vmath.V(w/2, h*p.ArcCenterYRatio)
	arcRadius := w * p.ArcRadiusRatio

	var zones []DropZone
	for i := 0; i < maxShrinkSteps; i++ {
		zones = p.placeOnArc(count, center, arcRadius, base, span, step)
		if p.fits(zones, w, h) {
			break
		}
		// Shrink the arc, never individual centers, so spacing stays uniform
		arcRadius *= shrinkFactor
	}
	return zones
}

// singleZone centers a lone zone horizontally, SingleZoneOffset above the bottom edge
// Radius and offset are both limited so the zone keeps the same on-screen share as arc zones
func (p Params) singleZone(w, h, base float64) DropZone {
	keep := 1 - p.MaxOverhang
	r := base
	if keep > 0 {
		r = math.Min(r, math.Min(w, h)/(2*keep))
	}
	lo := r * keep

	offset := p.SingleZoneOffset
	if offset <= 0 {
		offset = 2 * r
	}
	offset = vmath.Clamp(offset, lo, h-lo)
	return p.newZone(vmath.V(w/2, h-offset), r, arcCenterAngle)
}

// baseRadius is the preferred zone radius before spacing limits apply
func (p Params) baseRadius(w, h float64) float64 {
	if p.ZoneRadius > 0 {
		return p.ZoneRadius
	}
	r := math.Min(w, h) * p.AutoRadiusRatio
	return math.Max(r, 1)
}

// placeOnArc spaces count zones evenly across span, centered on straight down
// Zone radius is capped at half the chord between neighbors so zones never overlap
func (p Params) placeOnArc(count int, center vmath.Vec2, arcRadius, base, span, step float64) []DropZone {
	chordHalf := arcRadius * math.Sin(vmath.DegToRad(step/2))
	r := math.Min(base, chordHalf)
	if r <= 0 {
		r = math.SmallestNonzeroFloat64
	}

	start := arcCenterAngle - span/2
	zones := make([]DropZone, count)
	for i := 0; i < count; i++ {
		angle := start + step*(float64(i)+0.5)
		pos := vmath.Polar(center, arcRadius, angle)
		zones[i] = p.newZone(pos, r, normalizeAngle(angle))
	}
	return zones
}

// fits reports whether every zone keeps at least (1-MaxOverhang) of its radius on screen
func (p Params) fits(zones []DropZone, w, h float64) bool {
	for _, z := range zones {
		lo := z.Radius * (1 - p.MaxOverhang)
		if z.CenterX < lo || z.CenterX > w-lo || z.CenterY < lo || z.CenterY > h-lo {
			return false
		}
	}
	return true
}

func (p Params) newZone(pos vmath.Vec2, r, angle float64) DropZone {
	return DropZone{
		CenterX:    pos.X,
		CenterY:    pos.Y,
		Radius:     r,
		PetalCount: p.PetalCount,
		PetalDepth: p.PetalDepth,
		Angle:      angle,
		Scale:      1,
	}
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
