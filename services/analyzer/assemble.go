package analyzer

import (
	"math"
	"strings"

	"jamlytics-backend/lib/jamstats"
	"jamlytics-backend/lib/scrapers/itchio"
)

// RatedGame is the single submission the caller asked about, placed
// within the jam's distribution.
type RatedGame struct {
	Submission itchio.Submission `json:"submission"`
	// 1-based index within the sorted-by-rating-count list
	Position   int     `json:"position"`
	Percentile float64 `json:"percentile"`
	Karma      float64 `json:"karma"`
	// judged outcome, only present once the jam has concluded
	Result *itchio.ResultRecord `json:"result,omitempty"`
}

// JamGraphResult is the one response object per (jam, rated game)
// request. It is assembled fresh per request and never cached as a
// whole since the rated game varies per request.
type JamGraphResult struct {
	JamTitle    string `json:"jamTitle"`
	GameTitle   string `json:"gameTitle"`
	ThemeColor  string `json:"color"`
	RatingsOpen bool   `json:"ratingsOpen"`

	NumGames        int                        `json:"numGames"`
	RatingMoments   jamstats.Moments           `json:"ratingMoments"`
	CoolnessMoments jamstats.Moments           `json:"coolnessMoments"`
	Points          []jamstats.PercentilePoint `json:"points"`
	Platforms       map[string]int             `json:"platforms"`

	HasResults    bool                        `json:"hasResults"`
	TeamToScore   []jamstats.TeamScorePoint   `json:"teamToScore,omitempty"`
	ScoreToRating []jamstats.ScoreRatingPoint `json:"scoreToRating,omitempty"`
	RatingToScore []jamstats.RatingScorePoint `json:"ratingToScore,omitempty"`

	RatedGame RatedGame `json:"ratedGame"`
}

func roundValue(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// Assemble joins an aggregate with a specific rate link. The match is
// exact string equality on the reconstructed absolute URL, deliberately
// without trailing-slash or query normalization.
func Assemble(agg jamstats.Aggregate, page itchio.JamPage, rateLink, baseURL string) (JamGraphResult, error) {
	base := strings.TrimSuffix(baseURL, "/")

	found := -1
	for i, sub := range agg.Submissions {
		if base+sub.URL == rateLink {
			found = i
			break
		}
	}
	if found < 0 {
		return JamGraphResult{}, ErrGameNotFound
	}
	sub := agg.Submissions[found]

	position := found + 1
	percentile := roundValue(float64(position)/float64(agg.NumGames)*100, 3)

	rated := RatedGame{
		Submission: sub,
		Position:   position,
		Percentile: percentile,
		Karma:      jamstats.Karma(sub.Coolness, sub.RatingCount),
	}
	if agg.HasResults {
		// exact-title lookup, same known duplicate-title limitation
		// as the series join
		for i := range agg.Results {
			if agg.Results[i].Title == sub.Title {
				rated.Result = &agg.Results[i]
				break
			}
		}
	}

	return JamGraphResult{
		JamTitle:        page.JamTitle,
		GameTitle:       page.GameTitle,
		ThemeColor:      page.ThemeColor,
		RatingsOpen:     page.RatingsOpen,
		NumGames:        agg.NumGames,
		RatingMoments:   agg.RatingMoments,
		CoolnessMoments: agg.CoolnessMoments,
		Points:          agg.Points,
		Platforms:       agg.Platforms,
		HasResults:      agg.HasResults,
		TeamToScore:     agg.TeamToScore,
		ScoreToRating:   agg.ScoreToRating,
		RatingToScore:   agg.RatingToScore,
		RatedGame:       rated,
	}, nil
}
