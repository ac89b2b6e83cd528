package jamstats

import "math"

// Moments holds the descriptive statistics for one sorted integer series.
// Skewness and kurtosis use the standard adjusted-moment formulas whose
// n-1/n-2/n-3 terms are undefined for fewer than four samples; they are
// nil in that case rather than NaN.
type Moments struct {
	Sum      int      `json:"sum"`
	Mean     int      `json:"mean"`
	Median   int      `json:"median"`
	Smallest int      `json:"smallest"`
	Biggest  int      `json:"biggest"`
	Variance float64  `json:"variance"`
	StdDev   float64  `json:"standardDeviation"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
}

// MedianIndex is round(n/2) clamped into [0, n-1].
func MedianIndex(n int) int {
	i := int(math.Round(float64(n) / 2))
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// ComputeMoments computes the moments of a series sorted in ascending
// order. An empty series yields the zero value.
func ComputeMoments(sorted []int) Moments {
	n := len(sorted)
	if n == 0 {
		return Moments{}
	}

	sum := 0
	for _, v := range sorted {
		sum += v
	}
	mean := float64(sum) / float64(n)

	variance := 0.0
	for _, v := range sorted {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)

	m := Moments{
		Sum:      sum,
		Mean:     int(math.Round(mean)),
		Median:   sorted[MedianIndex(n)],
		Smallest: sorted[0],
		Biggest:  sorted[n-1],
		Variance: variance,
		StdDev:   stddev,
	}

	if n < 4 || stddev == 0 {
		return m
	}

	sum3 := 0.0
	sum4 := 0.0
	for _, v := range sorted {
		z := (float64(v) - mean) / stddev
		z3 := z * z * z
		sum3 += z3
		sum4 += z3 * z
	}

	nf := float64(n)
	skewness := nf * sum3 / ((nf - 1) * (nf - 2))
	kurtosis := nf*(nf+1)*sum4/((nf-1)*(nf-2)*(nf-3)) -
		3*(nf-1)*(nf-1)/((nf-2)*(nf-3))

	m.Skewness = &skewness
	m.Kurtosis = &kurtosis
	return m
}
