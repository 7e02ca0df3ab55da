package engine

import "math"

// round2 rounds to two decimals, half away from zero. All percentage math in
// the engine goes through this so cycles stay byte-reproducible.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
