package itchio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJamTitle(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<h1 class="jam_title_header"><a href="/jam/test-jam"> Test Jam 2026 </a></h1>
</body></html>`)
	require.Equal(t, "Test Jam 2026", JamTitle(doc))

	require.Equal(t, "", JamTitle(parseDoc(t, `<html><body></body></html>`)))
}

func TestThemeColor(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<style id="jam_theme">:root { --itchio_border_radius: 4px; --itchio_button_color: #fa5c5c; }</style>
</head></html>`)
	require.Equal(t, "#fa5c5c", ThemeColor(doc))

	require.Equal(t, DefaultThemeColor, ThemeColor(parseDoc(t, `<html></html>`)))
}

func TestDefaultTitleCleaner(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{
			"Rate Honey Our House is 10 Feet Deep by Notenlish for GMTK Game Jam 2026 - itch.io",
			"honey our house is 10 feet deep",
		},
		{
			// concluded jams drop the leading Rate token
			"Deep Down by somebody for Ludum Dare 60 - itch.io",
			"deep down",
		},
		{
			"Rate Standalone - itch.io",
			"standalone - itch.io",
		},
	}

	for _, c := range cases {
		require.Equal(t, c.want, DefaultTitleCleaner(c.raw), c.raw)
	}
}

func TestGameTitleCustomCleaner(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>Rate Foo by Bar - itch.io</title></head></html>`)

	require.Equal(t, "foo", GameTitle(doc, nil))
	require.Equal(t, "Rate Foo by Bar - itch.io", GameTitle(doc, func(raw string) string {
		return raw
	}))
}

func TestRatingsOpen(t *testing.T) {
	open := parseDoc(t, `<html><head><title>Rate Foo by Bar for Some Jam - itch.io</title></head></html>`)
	require.True(t, RatingsOpen(open))

	closed := parseDoc(t, `<html><head><title>Foo by Bar for Some Jam - itch.io</title></head></html>`)
	require.False(t, RatingsOpen(closed))
}
