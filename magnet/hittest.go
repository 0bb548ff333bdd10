// Package magnet decides which drop zone the pointer is over and how far the
// drawn token is pulled toward a near miss
package magnet

import (
	"math"

	"github.com/lixenwraith/shotdrop/vmath"
	"github.com/lixenwraith/shotdrop/zone"
)

// Params tunes highlight and attraction reach
type Params struct {
	// HighlightMargin scales the radius for the highlight test
	// 1.1 approximates the petal tips without rasterizing the outline
	HighlightMargin float64

	// AttractRange is the outer attraction radius as a multiple of zone radius
	AttractRange float64

	// AttractPull is the fraction of the way the drawn token moves toward the zone center
	AttractPull float64
}

// DefaultParams returns the stock tuning
func DefaultParams() Params {
	return Params{
		HighlightMargin: 1.1,
		AttractRange:    2.5,
		AttractPull:     0.3,
	}
}

// Result is one hit-test outcome
type Result struct {
	Highlight int // Index into zones, -1 when none
	Attract   int // Index of the attracting zone, -1 when none

	HighlightedID int64

	// Adjusted is where the token should be drawn; equals the pointer unless attracted
	Adjusted vmath.Vec2
}

// HasHighlight reports whether a zone is the current drop target
func (r Result) HasHighlight() bool { return r.Highlight >= 0 }

// HitTester performs proximity tests against zone circles
// The petal outline is intentionally ignored; a widened circle stands in for it
type HitTester struct {
	params Params
}

// New creates a hit tester; zero fields fall back to defaults
func New(p Params) *HitTester {
	d := DefaultParams()
	if p.HighlightMargin <= 0 {
		p.HighlightMargin = d.HighlightMargin
	}
	if p.AttractRange <= 1 {
		p.AttractRange = d.AttractRange
	}
	if p.AttractPull <= 0 || p.AttractPull > 1 {
		p.AttractPull = d.AttractPull
	}
	return &HitTester{params: p}
}

// Params returns the effective tuning
func (h *HitTester) Params() Params { return h.params }

// Update classifies pointer against zones and rewrites each zone's IsHighlighted flag
// The first zone in slice order wins a highlight tie, so callers keep folder order
func (h *HitTester) Update(pointer vmath.Vec2, zones []zone.DropZone) Result {
	res := Result{Highlight: -1, Attract: -1, Adjusted: pointer}

	for i := range zones {
		zones[i].IsHighlighted = false
		if res.Highlight < 0 && vmath.CircleContains(zones[i].Center(), zones[i].Radius, h.params.HighlightMargin, pointer) {
			res.Highlight = i
			res.HighlightedID = zones[i].ID
			zones[i].IsHighlighted = true
		}
	}
	if res.HasHighlight() {
		return res
	}

	// Nearest zone in the attraction ring pulls the drawn token
	nearest := math.MaxFloat64
	for i := range zones {
		z := &zones[i]
		c := z.Center()
		if !vmath.InRing(c, z.Radius, z.Radius*h.params.AttractRange, pointer) {
			continue
		}
		if d := vmath.DistSq(c, pointer); d < nearest {
			nearest = d
			res.Attract = i
		}
	}
	if res.Attract >= 0 {
		res.Adjusted = vmath.Lerp(pointer, zones[res.Attract].Center(), h.params.AttractPull)
	}
	return res
}
