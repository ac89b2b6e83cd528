package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestFindInlineScript(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>
<script src="/bundle.js"></script>
<script>analytics.boot();</script>
<script>new R.Jam.BrowseEntries({"entries_url":"\/jam\/1\/entries.json"});</script>
</body></html>`))
	require.NoError(t, err)

	script, ok := FindInlineScript(doc, "entries.json", "R.Jam.BrowseEntries")
	require.True(t, ok)
	require.Contains(t, script, "entries_url")

	_, ok = FindInlineScript(doc, "entries.json", "no.such.marker")
	require.False(t, ok)
}
