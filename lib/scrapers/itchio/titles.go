package itchio

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const DefaultThemeColor = "#F59E0B"

// JamTitle returns the display title from the jam's entries page.
// Best effort, an empty string is possible and tolerated downstream.
func JamTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("h1.jam_title_header a").Text())
}

// ThemeColor pulls the jam's accent color out of the inline theme
// stylesheet, falling back to a fixed default when absent.
func ThemeColor(doc *goquery.Document) string {
	css := doc.Find("style#jam_theme").Text()
	const key = "--itchio_button_color: "
	i := strings.Index(css, key)
	if i < 0 {
		return DefaultThemeColor
	}
	value := css[i+len(key):]
	value, _, _ = strings.Cut(value, ";")
	return strings.TrimSpace(value)
}

// TitleCleaner reduces a rate page's <title> text to the bare game title.
// The heuristic is genuinely ambiguous for titles that legitimately
// contain "rate" or "by", so it is swappable rather than fixed.
type TitleCleaner func(rawTitle string) string

// DefaultTitleCleaner mirrors the itch.io <title> layout:
//
//	Rate Some Game by Some Team for Some Jam - itch.io
//
// The leading "rate" token only appears while the jam is still accepting
// ratings. Everything from the last "by" onward is attribution.
func DefaultTitleCleaner(rawTitle string) string {
	title := strings.ToLower(rawTitle)
	if strings.Contains(title, "rate") {
		_, title, _ = strings.Cut(title, "rate")
		title = strings.TrimSpace(title)
	}
	if i := strings.LastIndex(title, "by"); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// GameTitle extracts the submission's title from its rate page using the
// given cleaner (nil means DefaultTitleCleaner).
func GameTitle(rateDoc *goquery.Document, clean TitleCleaner) string {
	if clean == nil {
		clean = DefaultTitleCleaner
	}
	return clean(rateDoc.Find("title").Text())
}

// RatingsOpen reports whether the rate page's <title> still carries the
// leading "rate" token itch.io uses while a jam accepts ratings. This is
// a heuristic signal, never authoritative: a game title may itself
// contain the word.
func RatingsOpen(rateDoc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(rateDoc.Find("title").Text()))
	return strings.HasPrefix(title, "rate ")
}
