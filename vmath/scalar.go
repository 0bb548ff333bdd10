package vmath

import "math"

// Clamp restricts v to [lo, hi]; lo wins when the range is inverted
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampInt restricts v to [lo, hi]; lo wins when the range is inverted
func ClampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampDuration restricts d to [lo, hi] for animation timing
func ClampDuration[T ~int64](d, lo, hi T) T {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// EaseOutCubic maps t in [0,1] to a curve that starts fast and settles at 1
// Input outside the range is clamped
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Oscillate returns a value in [0,1] following a cosine wave with given period
// Starts at 0 for phase 0, peaks at half period
func Oscillate(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	return 0.5 - 0.5*math.Cos(2*math.Pi*elapsed/period)
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
