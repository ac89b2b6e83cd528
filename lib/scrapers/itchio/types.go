package itchio

// The types in this file mirror the undocumented JSON feeds itch.io serves
// to its own jam frontend. Fields not listed here are dropped at decode time.

type RawUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type RawGame struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	User       RawUser  `json:"user"`
	Cover      string   `json:"cover"`
	GifCover   string   `json:"gif_cover"`
	CoverColor string   `json:"cover_color"`
	ShortText  string   `json:"short_text"`
	Platforms  []string `json:"platforms"`
}

type Contributor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawSubmission is one jam entry as delivered by entries.json.
// `url` is unique per submission within one jam and is the join key
// against a caller-supplied rate link.
type RawSubmission struct {
	ID             int64         `json:"id"`
	RatingCount    int           `json:"rating_count"`
	Coolness       int           `json:"coolness"`
	CreatedAt      string        `json:"created_at"`
	URL            string        `json:"url"`
	FieldResponses []string      `json:"field_responses"`
	Contributors   []Contributor `json:"contributors"`
	Game           RawGame       `json:"game"`
}

// Submission is a RawSubmission with server-internal identifiers, cover
// assets and uploader identity stripped. Created once at ingestion and
// never mutated afterward.
type Submission struct {
	URL            string
	Title          string
	ShortText      string
	RatingCount    int
	Coolness       int
	CreatedAt      string
	TeamSize       int
	Platforms      []string
	FieldResponses []string
}

type CriterionResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	RawScore float64 `json:"raw_score"`
	Rank     int     `json:"rank"`
}

// ResultRecord is one judged outcome from results.json, present only
// after a jam's voting period has ended.
type ResultRecord struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	URL          string            `json:"url"`
	Score        float64           `json:"score"`
	RawScore     float64           `json:"raw_score"`
	Rank         int               `json:"rank"`
	RatingCount  int               `json:"rating_count"`
	Contributors []Contributor     `json:"contributors"`
	Criteria     []CriterionResult `json:"criteria"`
}

func (r ResultRecord) TeamSize() int {
	if len(r.Contributors) < 1 {
		return 1
	}
	return len(r.Contributors)
}

type entriesDocument struct {
	JamGames []RawSubmission `json:"jam_games"`
}

type resultsDocument struct {
	Results []ResultRecord `json:"results"`
}
