package itchio

import (
	"net/url"
	"strings"

	"jamlytics-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the jam frontend boots its entry browser with a call like
// R.Jam.BrowseEntries({...,"entries_url":"\/jam\/12345\/entries.json",...})
// embedded in an inline script on the /entries page.
const browseEntriesMarker = "R.Jam.BrowseEntries"

const entriesSuffix = "entries.json"
const entriesURLKey = "entries_url"

// LocateEntriesJSON recovers the absolute URL of a jam's hidden
// entries.json feed from the entry-browsing page. `base` resolves the
// relative path found in the markup.
//
// The extraction slices the script text between the entries_url key and
// the next occurrence of "entries.json". When the slice is anomalously
// long or includes an /unrated segment (markup variants observed in the
// wild), it re-anchors on the `"entries_url":"` key literal instead.
func LocateEntriesJSON(doc *goquery.Document, base *url.URL) (string, error) {
	script, ok := htmlutil.FindInlineScript(doc, entriesSuffix, browseEntriesMarker)
	if !ok {
		return "", ErrNoEntriesScript
	}

	i := strings.Index(script, browseEntriesMarker)
	obj := script[i+len(browseEntriesMarker):]

	right := strings.Index(obj, entriesSuffix)
	left := strings.Index(obj, entriesURLKey)
	if right < 0 || left < 0 {
		return "", ErrEntriesURLNotFound
	}
	right += len(entriesSuffix)
	// skip the key itself plus the `":"` separator
	left += len(entriesURLKey) + 3
	if left >= right {
		return "", ErrEntriesURLNotFound
	}

	path := obj[left:right]
	path = strings.ReplaceAll(path, `\/`, "/")
	path = strings.ReplaceAll(path, "//", "/")

	if len(path) > 100 || strings.Contains(path, "/unrated") {
		anchor := `"` + entriesURLKey + `":"`
		left = strings.Index(path, anchor)
		right = strings.Index(path, entriesSuffix)
		if left < 0 || right < 0 {
			return "", ErrEntriesURLNotFound
		}
		left += len(anchor)
		right += len(entriesSuffix)
		if left >= right {
			return "", ErrEntriesURLNotFound
		}
		path = path[left:right]
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", ErrEntriesURLNotFound
	}
	return base.ResolveReference(ref).String(), nil
}

// ResultsURL derives the results.json feed address from an entries.json
// one. The feed only exists once a jam's voting period has ended.
func ResultsURL(entriesURL string) string {
	return strings.Replace(entriesURL, entriesSuffix, "results.json", 1)
}
