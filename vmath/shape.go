package vmath

// CircleContains reports whether p lies within radius of center, widened by margin
// margin scales the radius: 1.0 is the exact circle, 1.1 admits 10% extra reach
func CircleContains(center Vec2, radius, margin float64, p Vec2) bool {
	reach := radius * margin
	return DistSq(center, p) <= reach*reach
}

// InRing reports whether p lies strictly between the inner and outer radii of center
func InRing(center Vec2, inner, outer float64, p Vec2) bool {
	d := Dist(center, p)
	return d > inner && d < outer
}

// PetalOutline builds a scalloped polygon around center
// Vertices alternate between the full radius (tips) and radius*(1-depth) (valleys),
// one tip and one valley per petal; petals below 3 is raised to 3
// The first tip points straight up
func PetalOutline(center Vec2, radius float64, petals int, depth float64) []Vec2 {
	if petals < 3 {
		petals = 3
	}
	depth = Clamp(depth, 0, 1)
	inner := radius * (1 - depth)

	n := petals * 2
	step := 360.0 / float64(n)
	pts := make([]Vec2, n)
	for i := 0; i < n; i++ {
		r := radius
		if i%2 == 1 {
			r = inner
		}
		pts[i] = Polar(center, r, -90+step*float64(i))
	}
	return pts
}

// PolygonContains is an even-odd ray cast test, valid for concave outlines
func PolygonContains(poly []Vec2, p Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of a polygon
func Bounds(poly []Vec2) (min, max Vec2) {
	if len(poly) == 0 {
		return
	}
	min, max = poly[0], poly[0]
	for _, p := range poly[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}
