package jamstats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKarma(t *testing.T) {
	// ln(11) - ln(51)/ln(5)
	require.InDelta(t, -0.045, Karma(10, 50), 0.001)
	require.Equal(t, 0.0, Karma(0, 0))

	// rating many and being rated little drives karma down
	require.Less(t, Karma(0, 100), 0.0)
	require.Greater(t, Karma(100, 0), 0.0)
}
