package jamstats

import "math"

// Karma approximates itch.io's internal ranking adjustment:
//
//	karma = ln(1 + coolness) - ln(1 + rating_count) / ln(5)
//
// The formula is community-sourced, treat it as a black-box
// approximation rather than ground truth.
func Karma(coolness, ratingCount int) float64 {
	return math.Log(1+float64(coolness)) - math.Log(1+float64(ratingCount))/math.Log(5)
}
