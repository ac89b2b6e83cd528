package jamstats

import (
	"fmt"
	"testing"

	"jamlytics-backend/lib/scrapers/itchio"

	"github.com/stretchr/testify/require"
)

func rampSubmissions(n int) []itchio.Submission {
	subs := make([]itchio.Submission, n)
	for i := range subs {
		subs[i] = itchio.Submission{
			URL:         fmt.Sprintf("/jam/test/rate/%d", i+1),
			Title:       fmt.Sprintf("Game %d", i+1),
			RatingCount: i + 1,
			Coolness:    (i + 1) * 2,
			TeamSize:    1,
		}
	}
	return subs
}

func TestPercentileSeries(t *testing.T) {
	points := PercentileSeries(rampSubmissions(100))
	require.Equal(t, len(PercentileFractions), len(points))

	// right edge of the 50% bucket is index 49, ratings ramp from 1
	for _, p := range points {
		if p.Name == "50%" {
			require.Equal(t, 50, p.Rating)
		}
	}

	last := points[len(points)-1]
	require.Equal(t, "100%", last.Name)
	require.Equal(t, 100, last.Rating)

	// ratings never decrease going right through the buckets
	prev := 0
	for _, p := range points {
		require.GreaterOrEqual(t, p.Rating, prev, p.Name)
		prev = p.Rating
	}
}

func TestPercentileSeriesSingle(t *testing.T) {
	points := PercentileSeries(rampSubmissions(1))
	require.Equal(t, len(PercentileFractions), len(points))
	for _, p := range points {
		require.Equal(t, 1, p.Rating)
		require.Equal(t, 2.0, p.Coolness)
	}
}

func TestPercentileSeriesEmpty(t *testing.T) {
	require.Empty(t, PercentileSeries(nil))
}

func TestTitleJoiner(t *testing.T) {
	subs := rampSubmissions(3)
	join := NewTitleJoiner(subs)

	sub, ok := join(itchio.ResultRecord{Title: "Game 2"})
	require.True(t, ok)
	require.Equal(t, "/jam/test/rate/2", sub.URL)

	_, ok = join(itchio.ResultRecord{Title: "No Such Game"})
	require.False(t, ok)
}

func TestTeamSizeToScore(t *testing.T) {
	solo := []itchio.Contributor{{Name: "a"}}
	duo := []itchio.Contributor{{Name: "a"}, {Name: "b"}}

	results := []itchio.ResultRecord{
		{Title: "x", Score: 4, Rank: 1, Contributors: duo},
		{Title: "y", Score: 2, Rank: 3, Contributors: solo},
		{Title: "z", Score: 3, Rank: 2, Contributors: solo},
	}
	points := TeamSizeToScore(results)
	require.Equal(t, len(PercentileFractions), len(points))

	// the source slice stays unsorted
	require.Equal(t, "x", results[0].Title)

	last := points[len(points)-1]
	require.Equal(t, 2, last.TeamSize)
	first := points[0]
	require.Equal(t, 1, first.TeamSize)
}

func TestScoreToRatingCount(t *testing.T) {
	results := []itchio.ResultRecord{
		{Title: "Game 1", Score: 1.5},
		{Title: "Game 2", Score: 3.0},
		{Title: "Unjoinable", Score: 4.5},
	}
	join := NewTitleJoiner(rampSubmissions(2))

	points := ScoreToRatingCount(results, join)
	require.Equal(t, len(PercentileFractions), len(points))

	last := points[len(points)-1]
	require.Equal(t, 4.5, last.Score)
	// the unjoinable record drops out of the average entirely
	first := points[0]
	require.Equal(t, 1.0, first.AvgRatingCount)
}

func TestRatingCountToScore(t *testing.T) {
	results := []itchio.ResultRecord{
		{Title: "a", RatingCount: 30, Score: 4},
		{Title: "b", RatingCount: 10, Score: 2},
		{Title: "c", RatingCount: 20, Score: 3},
	}
	points := RatingCountToScore(results)

	first := points[0]
	require.Equal(t, 10, first.RatingCount)
	require.Equal(t, 2.0, first.AvgScore)

	last := points[len(points)-1]
	require.Equal(t, 30, last.RatingCount)
}
