package itchio

// ParseSubmission normalizes one raw jam entry. Numeric ids, cover
// assets and uploader identity are useless to the aggregate and dropped;
// url, rating_count, coolness, created_at and the game title must be
// preserved exactly since they are join keys and statistical inputs.
func ParseSubmission(raw RawSubmission) Submission {
	teamSize := len(raw.Contributors)
	if teamSize < 1 {
		teamSize = 1
	}
	return Submission{
		URL:            raw.URL,
		Title:          raw.Game.Title,
		ShortText:      raw.Game.ShortText,
		RatingCount:    raw.RatingCount,
		Coolness:       raw.Coolness,
		CreatedAt:      raw.CreatedAt,
		TeamSize:       teamSize,
		Platforms:      raw.Game.Platforms,
		FieldResponses: raw.FieldResponses,
	}
}

func ParseSubmissions(raw []RawSubmission) []Submission {
	parsed := make([]Submission, len(raw))
	for i, r := range raw {
		parsed[i] = ParseSubmission(r)
	}
	return parsed
}
