// Package physics provides the arena bounds and hit-test math.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// PointInCircle checks if a point lies within (or on) a circle.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= radius*radius
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Reflect keeps a single axis inside [0, max]. When pos has crossed either end
// the velocity is negated and pos is clamped back. Returns true if it bounced.
// One clamp-and-flip per call: fast movers are not sub-stepped.
func Reflect(pos, vel *float64, max float64) bool {
	if max < 0 {
		max = 0
	}
	if *pos >= 0 && *pos <= max {
		return false
	}
	*vel = -*vel
	*pos = Clamp(*pos, 0, max)
	return true
}
