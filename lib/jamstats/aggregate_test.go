package jamstats

import (
	"slices"
	"testing"

	"jamlytics-backend/lib/scrapers/itchio"

	"github.com/stretchr/testify/require"
)

func TestBuildAggregateWithoutResults(t *testing.T) {
	subs := []itchio.Submission{
		{Title: "c", RatingCount: 30, Coolness: 1, Platforms: []string{"windows", "linux"}},
		{Title: "a", RatingCount: 10, Coolness: 9, Platforms: []string{"windows"}},
		{Title: "b", RatingCount: 20, Coolness: 5},
	}
	agg := BuildAggregate(subs, nil, nil)

	require.Equal(t, 3, agg.NumGames)
	require.Equal(t, []int{10, 20, 30}, agg.SortedRatings)
	require.Equal(t, []int{1, 5, 9}, agg.SortedCoolness)
	require.True(t, slices.IsSortedFunc(agg.Submissions, func(a, b itchio.Submission) int {
		return a.RatingCount - b.RatingCount
	}))

	require.Equal(t, 60, agg.RatingMoments.Sum)
	require.Equal(t, map[string]int{"windows": 2, "linux": 1}, agg.Platforms)

	require.False(t, agg.HasResults)
	require.Nil(t, agg.Results)
	require.Nil(t, agg.TeamToScore)
	require.Nil(t, agg.ScoreToRating)
	require.Nil(t, agg.RatingToScore)
}

func TestBuildAggregateWithResults(t *testing.T) {
	subs := rampSubmissions(5)
	results := []itchio.ResultRecord{
		{Title: "Game 1", Score: 3.5, Rank: 2, RatingCount: 1},
		{Title: "Game 2", Score: 4.5, Rank: 1, RatingCount: 2},
	}
	agg := BuildAggregate(subs, results, nil)

	require.True(t, agg.HasResults)
	require.Equal(t, results, agg.Results)
	require.Len(t, agg.TeamToScore, len(PercentileFractions))
	require.Len(t, agg.ScoreToRating, len(PercentileFractions))
	require.Len(t, agg.RatingToScore, len(PercentileFractions))
}

func TestBuildAggregateEmptyResultsStillConcluded(t *testing.T) {
	// an empty (non-nil) results list means judging concluded with no
	// published outcomes, which is distinct from voting still being open
	agg := BuildAggregate(rampSubmissions(2), []itchio.ResultRecord{}, nil)
	require.True(t, agg.HasResults)
}

func TestBuildAggregateEmpty(t *testing.T) {
	agg := BuildAggregate(nil, nil, nil)
	require.Equal(t, 0, agg.NumGames)
	require.Empty(t, agg.Points)
}
