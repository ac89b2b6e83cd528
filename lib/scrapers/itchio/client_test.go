package itchio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jamlytics-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const testEntriesPage = `<!DOCTYPE html>
<html><head>
<title>Entries to Test Jam 2026</title>
<style id="jam_theme">:root { --itchio_button_color: #1a7f37; }</style>
</head><body>
<h1 class="jam_title_header"><a href="/jam/test-jam">Test Jam 2026</a></h1>
<script type="text/javascript">
new R.Jam.BrowseEntries({"entries_url":"\/jam\/12345\/entries.json"});
</script>
</body></html>`

const testRatePage = `<html><head>
<title>Rate Deep Down by alice for Test Jam 2026 - itch.io</title>
</head><body></body></html>`

const testEntriesJSON = `{"jam_games":[
  {"id":1,"rating_count":5,"coolness":7,"url":"/jam/test-jam/rate/111",
   "contributors":[{"name":"alice"}],
   "game":{"title":"Deep Down","short_text":"dig","platforms":["windows"]}},
  {"id":2,"rating_count":9,"coolness":2,"url":"/jam/test-jam/rate/222",
   "game":{"title":"Up High","platforms":["web"]}}
]}`

const testResultsJSON = `{"results":[
  {"title":"Up High","score":4.2,"raw_score":4.0,"rank":1,"rating_count":9,
   "criteria":[{"name":"Fun","score":4.2,"raw_score":4.0,"rank":1}]},
  {"title":"Deep Down","score":3.1,"raw_score":3.0,"rank":2,"rating_count":5,
   "contributors":[{"name":"alice"}]}
]}`

func newTestServer(t *testing.T, resultsStatus int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/jam/test-jam/entries", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testEntriesPage))
	})
	mux.HandleFunc("/jam/test-jam/rate/111", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRatePage))
	})
	mux.HandleFunc("/jam/12345/entries.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testEntriesJSON))
	})
	mux.HandleFunc("/jam/12345/results.json", func(w http.ResponseWriter, r *http.Request) {
		if resultsStatus != http.StatusOK {
			w.WriteHeader(resultsStatus)
			return
		}
		w.Write([]byte(testResultsJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseURL string) *Client {
	client, err := NewClient(ClientOptions{
		BaseUrl: baseURL,
		Timeout: time.Second * 5,
	})
	require.NoError(t, err)
	return client
}

func TestScrapeJam(t *testing.T) {
	defer telemetry.SetupForTesting(t, "scrapers/itchio")()

	server := newTestServer(t, http.StatusNotFound)
	client := newTestClient(t, server.URL)

	page, err := client.ScrapeJam(
		context.Background(),
		server.URL+"/jam/test-jam/entries",
		server.URL+"/jam/test-jam/rate/111",
	)
	require.NoError(t, err)

	require.Equal(t, server.URL+"/jam/12345/entries.json", page.EntriesJSON)
	require.Equal(t, "Test Jam 2026", page.JamTitle)
	require.Equal(t, "deep down", page.GameTitle)
	require.Equal(t, "#1a7f37", page.ThemeColor)
	require.True(t, page.RatingsOpen)
}

func TestScrapeJamUpstreamFailure(t *testing.T) {
	defer telemetry.SetupForTesting(t, "scrapers/itchio")()

	server := newTestServer(t, http.StatusNotFound)
	client := newTestClient(t, server.URL)

	_, err := client.ScrapeJam(
		context.Background(),
		server.URL+"/jam/missing/entries",
		server.URL+"/jam/test-jam/rate/111",
	)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusNotFound, upstream.StatusCode)
}

func TestFetchEntries(t *testing.T) {
	defer telemetry.SetupForTesting(t, "scrapers/itchio")()

	server := newTestServer(t, http.StatusNotFound)
	client := newTestClient(t, server.URL)

	raw, err := client.FetchEntries(context.Background(), server.URL+"/jam/12345/entries.json")
	require.NoError(t, err)
	require.Len(t, raw, 2)
	require.Equal(t, "Deep Down", raw[0].Game.Title)
	require.Equal(t, 5, raw[0].RatingCount)
	require.Equal(t, 7, raw[0].Coolness)

	subs := ParseSubmissions(raw)
	require.Equal(t, 1, subs[0].TeamSize)
	require.Equal(t, 1, subs[1].TeamSize)
}

func TestFetchResults(t *testing.T) {
	defer telemetry.SetupForTesting(t, "scrapers/itchio")()

	server := newTestServer(t, http.StatusOK)
	client := newTestClient(t, server.URL)

	results, ok, err := client.FetchResults(context.Background(), server.URL+"/jam/12345/entries.json")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, results, 2)
	require.Equal(t, 1, results[0].Rank)
	require.Equal(t, "Fun", results[0].Criteria[0].Name)
}

func TestFetchResultsNotPublished(t *testing.T) {
	defer telemetry.SetupForTesting(t, "scrapers/itchio")()

	server := newTestServer(t, http.StatusNotFound)
	client := newTestClient(t, server.URL)

	// a missing feed is the steady state while voting is open
	results, ok, err := client.FetchResults(context.Background(), server.URL+"/jam/12345/entries.json")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, results)
}
