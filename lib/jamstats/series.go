package jamstats

import (
	"slices"

	"jamlytics-backend/lib/scrapers/itchio"
)

// PercentilePoint is one bar of the rating/coolness distribution graph:
// the rating count at the bucket's right edge and the mean coolness
// across every submission inside the bucket.
type PercentilePoint struct {
	Percentile float64 `json:"percentile"`
	Name       string  `json:"name"`
	Rating     int     `json:"rating"`
	Coolness   float64 `json:"coolness"`
}

// PercentileSeries expects submissions sorted ascending by rating count.
func PercentileSeries(byRating []itchio.Submission) []PercentilePoint {
	n := len(byRating)
	points := make([]PercentilePoint, 0, len(PercentileFractions))
	for _, b := range buckets(n) {
		sum := 0
		for i := b.lo; i <= b.hi; i++ {
			sum += byRating[i].Coolness
		}
		count := b.hi - b.lo + 1
		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		points = append(points, PercentilePoint{
			Percentile: b.fraction * 100,
			Name:       fractionName(b.fraction),
			Rating:     byRating[b.hi].RatingCount,
			Coolness:   avg,
		})
	}
	return points
}

// ResultJoiner resolves a judged outcome back to its submission. The
// default joins on exact game title, which silently collides on
// duplicate titles within one jam; it is pluggable so tests and future
// stable-id joins can replace it.
type ResultJoiner func(record itchio.ResultRecord) (itchio.Submission, bool)

func NewTitleJoiner(entries []itchio.Submission) ResultJoiner {
	byTitle := make(map[string]itchio.Submission, len(entries))
	for _, e := range entries {
		byTitle[e.Title] = e
	}
	return func(record itchio.ResultRecord) (itchio.Submission, bool) {
		sub, ok := byTitle[record.Title]
		return sub, ok
	}
}

type TeamScorePoint struct {
	Percentile  float64 `json:"percentile"`
	Name        string  `json:"name"`
	TeamSize    int     `json:"teamSize"`
	AvgScore    float64 `json:"avgScore"`
	AvgRawScore float64 `json:"avgRawScore"`
	AvgRank     float64 `json:"avgRank"`
}

// TeamSizeToScore buckets the judged outcomes by team size and averages
// score, raw score and rank per bucket.
func TeamSizeToScore(results []itchio.ResultRecord) []TeamScorePoint {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b itchio.ResultRecord) int {
		return a.TeamSize() - b.TeamSize()
	})

	points := make([]TeamScorePoint, 0, len(PercentileFractions))
	for _, b := range buckets(len(sorted)) {
		var score, rawScore, rank float64
		for i := b.lo; i <= b.hi; i++ {
			score += sorted[i].Score
			rawScore += sorted[i].RawScore
			rank += float64(sorted[i].Rank)
		}
		count := float64(b.hi - b.lo + 1)
		if count == 0 {
			count = 1
		}
		points = append(points, TeamScorePoint{
			Percentile:  b.fraction * 100,
			Name:        fractionName(b.fraction),
			TeamSize:    sorted[b.hi].TeamSize(),
			AvgScore:    score / count,
			AvgRawScore: rawScore / count,
			AvgRank:     rank / count,
		})
	}
	return points
}

type ScoreRatingPoint struct {
	Percentile     float64 `json:"percentile"`
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	AvgRatingCount float64 `json:"avgRatingCount"`
}

// ScoreToRatingCount buckets the judged outcomes by score and averages
// the rating counts of the matching submissions per bucket. Records the
// joiner cannot resolve contribute nothing to the average.
func ScoreToRatingCount(results []itchio.ResultRecord, join ResultJoiner) []ScoreRatingPoint {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b itchio.ResultRecord) int {
		if a.Score < b.Score {
			return -1
		}
		if a.Score > b.Score {
			return 1
		}
		return 0
	})

	points := make([]ScoreRatingPoint, 0, len(PercentileFractions))
	for _, b := range buckets(len(sorted)) {
		sum := 0
		matched := 0
		for i := b.lo; i <= b.hi; i++ {
			sub, ok := join(sorted[i])
			if !ok {
				continue
			}
			sum += sub.RatingCount
			matched++
		}
		avg := 0.0
		if matched > 0 {
			avg = float64(sum) / float64(matched)
		}
		points = append(points, ScoreRatingPoint{
			Percentile:     b.fraction * 100,
			Name:           fractionName(b.fraction),
			Score:          sorted[b.hi].Score,
			AvgRatingCount: avg,
		})
	}
	return points
}

type RatingScorePoint struct {
	Percentile  float64 `json:"percentile"`
	Name        string  `json:"name"`
	RatingCount int     `json:"ratingCount"`
	AvgScore    float64 `json:"avgScore"`
}

// RatingCountToScore is the symmetric series: buckets the judged
// outcomes by rating count and averages score per bucket.
func RatingCountToScore(results []itchio.ResultRecord) []RatingScorePoint {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b itchio.ResultRecord) int {
		return a.RatingCount - b.RatingCount
	})

	points := make([]RatingScorePoint, 0, len(PercentileFractions))
	for _, b := range buckets(len(sorted)) {
		score := 0.0
		for i := b.lo; i <= b.hi; i++ {
			score += sorted[i].Score
		}
		count := float64(b.hi - b.lo + 1)
		if count == 0 {
			count = 1
		}
		points = append(points, RatingScorePoint{
			Percentile:  b.fraction * 100,
			Name:        fractionName(b.fraction),
			RatingCount: sorted[b.hi].RatingCount,
			AvgScore:    score / count,
		})
	}
	return points
}
