package jamstats

import (
	"slices"

	"jamlytics-backend/lib/scrapers/itchio"
)

// Aggregate is the per-jam cached dataset. It is recomputed from source
// wholesale on cache expiry and never mutated in place.
type Aggregate struct {
	// sorted ascending by rating count
	Submissions []itchio.Submission `json:"submissions"`

	SortedRatings  []int `json:"sortedRatings"`
	SortedCoolness []int `json:"sortedCoolness"`
	NumGames       int   `json:"numGames"`

	RatingMoments   Moments `json:"ratingMoments"`
	CoolnessMoments Moments `json:"coolnessMoments"`

	Points    []PercentilePoint `json:"points"`
	Platforms map[string]int    `json:"platforms"`

	// HasResults is false while the jam has not concluded judging;
	// every field below it is then nil. No omitempty: the cache codec
	// must round-trip an empty-but-present series unchanged.
	HasResults    bool                  `json:"hasResults"`
	Results       []itchio.ResultRecord `json:"results"`
	TeamToScore   []TeamScorePoint      `json:"teamToScore"`
	ScoreToRating []ScoreRatingPoint    `json:"scoreToRating"`
	RatingToScore []RatingScorePoint    `json:"ratingToScore"`
}

// BuildAggregate computes the whole per-jam dataset from the parsed
// submission list and the judged outcomes (nil while voting is open).
// A nil joiner falls back to the exact-title join.
func BuildAggregate(subs []itchio.Submission, results []itchio.ResultRecord, join ResultJoiner) Aggregate {
	byRating := slices.Clone(subs)
	slices.SortStableFunc(byRating, func(a, b itchio.Submission) int {
		return a.RatingCount - b.RatingCount
	})

	sortedRatings := make([]int, len(byRating))
	coolness := make([]int, len(byRating))
	for i, s := range byRating {
		sortedRatings[i] = s.RatingCount
		coolness[i] = s.Coolness
	}
	sortedCoolness := slices.Clone(coolness)
	slices.Sort(sortedCoolness)

	agg := Aggregate{
		Submissions:     byRating,
		SortedRatings:   sortedRatings,
		SortedCoolness:  sortedCoolness,
		NumGames:        len(byRating),
		RatingMoments:   ComputeMoments(sortedRatings),
		CoolnessMoments: ComputeMoments(sortedCoolness),
		Points:          PercentileSeries(byRating),
		Platforms:       PlatformHistogram(byRating),
	}

	if results == nil {
		return agg
	}

	if join == nil {
		join = NewTitleJoiner(byRating)
	}
	agg.HasResults = true
	agg.Results = results
	agg.TeamToScore = TeamSizeToScore(results)
	agg.ScoreToRating = ScoreToRatingCount(results, join)
	agg.RatingToScore = RatingCountToScore(results)
	return agg
}
