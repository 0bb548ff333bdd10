// Package zone models drop zones and lays them out along a bottom arc
// that widens into a full ring as the zone count grows
package zone

import (
	"github.com/lixenwraith/shotdrop/vmath"
)

// DropZone is one folder target on screen
// Zones are recomputed on every layout pass; callers must not retain them across passes
type DropZone struct {
	ID         int64 // Folder identifier, assigned by Bind after layout
	CenterX    float64
	CenterY    float64
	Radius     float64
	PetalCount int
	PetalDepth float64 // 0..1, fraction of radius cut out between petals

	// Angle is the zone's position on the layout arc, degrees, 0 = right, 90 = down
	Angle float64

	IsHighlighted bool
	Scale         float64 // Pulse scale, 1.0 at rest
}

// Center returns the zone center as a vector
func (z DropZone) Center() vmath.Vec2 {
	return vmath.V(z.CenterX, z.CenterY)
}

// EffectiveScale returns Scale, treating the zero value as 1.0
func (z DropZone) EffectiveScale() float64 {
	if z.Scale <= 0 {
		return 1
	}
	return z.Scale
}

// Outline returns the petal polygon used for drawing
// Hit-testing never uses it; see magnet.HitTester
func (z DropZone) Outline() []vmath.Vec2 {
	return vmath.PetalOutline(z.Center(), z.Radius*z.EffectiveScale(), z.PetalCount, z.PetalDepth)
}

// Bind assigns ids to zones in order, zipping with the caller's folder order
// Zones beyond len(ids) keep their zero id
func Bind(zones []DropZone, ids []int64) []DropZone {
	for i := range zones {
		if i >= len(ids) {
			break
		}
		zones[i].ID = ids[i]
	}
	return zones
}

// IndexOf returns the slice index of the zone with id, or -1
func IndexOf(zones []DropZone, id int64) int {
	for i := range zones {
		if zones[i].ID == id {
			return i
		}
	}
	return -1
}
