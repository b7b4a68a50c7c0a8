package lyrics

import "math"

// EasingFunc maps linear progress in [0, 1] to eased progress. It must
// return 1 at 1.
type EasingFunc func(p float64) float64

// Linear is the identity easing.
func Linear(p float64) float64 {
	return p
}

// Snap returns an exponential easing 2^(k·(p−1)). Larger k holds the
// viewport near the current line for longer and then moves quickly, landing
// on the next line exactly at p = 1.
//
// At k = 0 the curve is flat at 1, an instant jump to the next line.
func Snap(k float64) EasingFunc {
	if k < 0 {
		k = 0
	}
	return func(p float64) float64 {
		return math.Exp2(k * (p - 1))
	}
}

// Instant jumps straight to the next line.
func Instant(float64) float64 {
	return 1
}
