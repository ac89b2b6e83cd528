package jamstats

import "jamlytics-backend/lib/scrapers/itchio"

// PlatformHistogram counts occurrences per platform tag across all
// submissions.
func PlatformHistogram(subs []itchio.Submission) map[string]int {
	histogram := map[string]int{}
	for _, s := range subs {
		for _, p := range s.Platforms {
			histogram[p]++
		}
	}
	return histogram
}
