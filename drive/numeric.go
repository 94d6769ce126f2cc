package drive

import "golang.org/x/exp/constraints"

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp maps t in [0,1] onto [from, to].
func lerp[T constraints.Integer | constraints.Float](t float64, from, to T) T {
	return T(float64(from) + t*(float64(to)-float64(from)))
}
