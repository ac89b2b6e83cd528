package jamstats

import (
	"math"
	"strconv"
)

// PercentileFractions is the cumulative-fraction table every bucketed
// series shares: 5% steps up to 90%, then finer steps approaching 100%
// where jam distributions have their long tail.
var PercentileFractions = []float64{
	0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50,
	0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90,
	0.925, 0.95, 0.975,
	0.985, 0.995,
	1.0,
}

// RightEdge maps a cumulative fraction to the index of its bucket's
// right edge within a sorted array of length n. Monotonically
// non-decreasing in v, and v = 1 always maps to the last index.
func RightEdge(v float64, n int) int {
	if n == 0 {
		return -1
	}
	i := int(math.Ceil(v*float64(n))) - 1
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

type bucket struct {
	fraction float64
	lo, hi   int // inclusive index range into the sorted array
}

// buckets slices [0, n) into the index ranges [v - step, v] described by
// the fraction table. Adjacent buckets share their edge element, which
// is what makes the per-bucket averages a smoothing rather than a point
// sample.
func buckets(n int) []bucket {
	if n == 0 {
		return nil
	}
	out := make([]bucket, 0, len(PercentileFractions))
	lo := 0
	for _, v := range PercentileFractions {
		hi := RightEdge(v, n)
		out = append(out, bucket{fraction: v, lo: lo, hi: hi})
		lo = hi
	}
	return out
}

func fractionName(v float64) string {
	return strconv.FormatFloat(v*100, 'f', -1, 64) + "%"
}
