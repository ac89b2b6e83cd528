package itchio

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"jamlytics-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/itchio")

const defaultBaseURL = "https://itch.io"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	Clean   TitleCleaner
}

type ClientOptions struct {
	// defaults to https://itch.io, overridable for tests
	BaseUrl string
	Timeout time.Duration
	// defaults to DefaultTitleCleaner
	Clean TitleCleaner
}

func NewClient(opts ClientOptions) (*Client, error) {
	rawBase := opts.BaseUrl
	if rawBase == "" {
		rawBase = defaultBaseURL
	}
	baseUrl, err := url.Parse(rawBase)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/itchio/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		Clean:   opts.Clean,
	}, nil
}

func (c *Client) fetchDocument(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &UpstreamError{URL: link, Err: err}
	}
	if res.StatusCode() != 200 {
		return nil, &UpstreamError{URL: link, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &UpstreamError{URL: link, Err: err}
	}
	return doc, nil
}

// JamPage is everything scraped off the two HTML pages of one request:
// the jam's entry-browsing page and the submission's rate page.
type JamPage struct {
	EntriesJSON string
	JamTitle    string
	GameTitle   string
	ThemeColor  string
	RatingsOpen bool
}

// ScrapeJam fetches the entries page and the rate page concurrently and
// extracts the entries.json address, titles and theme color from them.
func (c *Client) ScrapeJam(ctx context.Context, entriesLink, rateLink string) (JamPage, error) {
	ctx, span := tracer.Start(ctx, "ScrapeJam")
	defer span.End()

	var entriesDoc, rateDoc *goquery.Document
	var entriesErr, rateErr error

	done := make(chan struct{})
	go func() {
		defer close(done)
		rateDoc, rateErr = c.fetchDocument(ctx, rateLink)
	}()
	entriesDoc, entriesErr = c.fetchDocument(ctx, entriesLink)
	<-done

	if entriesErr != nil {
		span.RecordError(entriesErr)
		span.SetStatus(codes.Error, "failed to fetch entries page")
		return JamPage{}, entriesErr
	}
	if rateErr != nil {
		span.RecordError(rateErr)
		span.SetStatus(codes.Error, "failed to fetch rate page")
		return JamPage{}, rateErr
	}

	entriesJSON, err := LocateEntriesJSON(entriesDoc, c.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate entries.json")
		return JamPage{}, err
	}

	return JamPage{
		EntriesJSON: entriesJSON,
		JamTitle:    JamTitle(entriesDoc),
		GameTitle:   GameTitle(rateDoc, c.Clean),
		ThemeColor:  ThemeColor(entriesDoc),
		RatingsOpen: RatingsOpen(rateDoc),
	}, nil
}
