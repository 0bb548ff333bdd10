package vmath

import "math"

// Vec2 is a point or displacement in screen pixel space
// Y grows downward, matching every host this package is drawn on
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64          { return math.Sqrt(v.LenSq()) }
func (v Vec2) IsZero() bool          { return v.X == 0 && v.Y == 0 }
func (v Vec2) Round() (int, int)     { return int(math.Round(v.X)), int(math.Round(v.Y)) }
func (v Vec2) Equal(o Vec2) bool     { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Near(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// DistSq returns squared Euclidean distance, preferred for comparisons
func DistSq(a, b Vec2) float64 {
	return b.Sub(a).LenSq()
}

// Dist returns Euclidean distance
func Dist(a, b Vec2) float64 {
	return math.Sqrt(DistSq(a, b))
}

// Lerp moves from a toward b by fraction t (unclamped)
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Polar returns the point at radius and angle from center
// Angle 0 = right, 90 = down (clockwise on screen)
func Polar(center Vec2, radius, angleDeg float64) Vec2 {
	rad := angleDeg * math.Pi / 180.0
	return Vec2{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// AngleDeg returns the screen angle of p around center in [0, 360)
// Same convention as Polar
func AngleDeg(center, p Vec2) float64 {
	d := p.Sub(center)
	deg := math.Atan2(d.Y, d.X) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
