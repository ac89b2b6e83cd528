package jamstats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeMoments(t *testing.T) {
	m := ComputeMoments([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	require.Equal(t, 55, m.Sum)
	require.Equal(t, 6, m.Mean)
	require.Equal(t, 6, m.Median)
	require.Equal(t, 1, m.Smallest)
	require.Equal(t, 10, m.Biggest)
	require.InDelta(t, 8.25, m.Variance, 1e-9)
	require.InDelta(t, 2.8722813, m.StdDev, 1e-6)
	require.NotNil(t, m.Skewness)
	require.NotNil(t, m.Kurtosis)
	// a uniform ramp is symmetric
	require.InDelta(t, 0, *m.Skewness, 1e-9)
}

func TestComputeMomentsEmpty(t *testing.T) {
	m := ComputeMoments(nil)
	require.Equal(t, Moments{}, m)
}

func TestComputeMomentsSmallSeries(t *testing.T) {
	// the adjusted moment formulas are undefined below four samples,
	// they must come back nil rather than NaN
	for _, series := range [][]int{{5}, {1, 9}, {1, 5, 9}} {
		m := ComputeMoments(series)
		require.Nil(t, m.Skewness, "n=%d", len(series))
		require.Nil(t, m.Kurtosis, "n=%d", len(series))
	}

	m := ComputeMoments([]int{5})
	require.Equal(t, 5, m.Mean)
	require.Equal(t, 5, m.Median)
	require.Equal(t, 5, m.Smallest)
	require.Equal(t, 5, m.Biggest)
}

func TestComputeMomentsConstantSeries(t *testing.T) {
	// zero spread would divide by zero in the z-score sums
	m := ComputeMoments([]int{3, 3, 3, 3, 3})
	require.Equal(t, 0.0, m.Variance)
	require.Nil(t, m.Skewness)
	require.Nil(t, m.Kurtosis)
}

func TestMedianIndex(t *testing.T) {
	require.Equal(t, 0, MedianIndex(1))
	require.Equal(t, 5, MedianIndex(10))

	for n := 1; n <= 25; n++ {
		i := MedianIndex(n)
		require.GreaterOrEqual(t, i, 0)
		require.LessOrEqual(t, i, n-1)
	}
}
