package rfm

import (
	"math"
	"sort"
)

// quintileBounds returns the 20/40/60/80th percentile boundaries of values
// using the nearest-rank method: sorted[max(0, ceil(p/100*n)-1)]. The input
// is not modified. Panics on an empty slice; callers guarantee at least one
// qualifying customer before scoring.
func quintileBounds(values []float64) [4]float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var bounds [4]float64
	for i, p := range [4]float64{20, 40, 60, 80} {
		idx := int(math.Ceil(p*n/100)) - 1
		if idx < 0 {
			idx = 0
		}
		bounds[i] = sorted[idx]
	}
	return bounds
}

// scoreRecency bands a recency value against its population boundaries.
// Recency is inverted: fewer days since the last purchase is better, so low
// values score 5. Comparisons are strictly-greater, which keeps a customer
// sitting exactly on a boundary in the better (higher) band.
func scoreRecency(days float64, bounds [4]float64) int {
	switch {
	case days > bounds[3]:
		return 1
	case days > bounds[2]:
		return 2
	case days > bounds[1]:
		return 3
	case days > bounds[0]:
		return 4
	default:
		return 5
	}
}

// scoreAscending bands a frequency or monetary value: higher is better.
// Comparisons are strictly-greater here as well, so the banding is
// deliberately asymmetric with scoreRecency around boundary ties.
func scoreAscending(value float64, bounds [4]float64) int {
	switch {
	case value > bounds[3]:
		return 5
	case value > bounds[2]:
		return 4
	case value > bounds[1]:
		return 3
	case value > bounds[0]:
		return 2
	default:
		return 1
	}
}
