package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"jamlytics-backend/lib/jamstats"
	"jamlytics-backend/lib/scrapers/itchio"
	"jamlytics-backend/services/analyzer/db"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/analyzer")

type Options struct {
	// defaults to 30 minutes
	CacheTTL time.Duration
	// defaults to DefaultMaxEncodedSize
	MaxEncodedSize int
	// joins judged outcomes back to submissions, defaults to the
	// exact-title join
	Join func(entries []itchio.Submission) jamstats.ResultJoiner
}

type Service struct {
	client *itchio.Client
	cache  aggregateCache
	// url log for sitemap generation, optional; failures there never
	// fail the main request
	qry  *db.Queries
	join func(entries []itchio.Submission) jamstats.ResultJoiner
}

func NewService(client *itchio.Client, cache *badger.DB, urllog *db.Queries, opts Options) Service {
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = time.Minute * 30
	}
	return Service{
		client: client,
		cache: aggregateCache{
			db:    cache,
			codec: Codec{MaxEncodedSize: opts.MaxEncodedSize},
			ttl:   ttl,
		},
		qry:  urllog,
		join: opts.Join,
	}
}

type Request struct {
	RateLink    string
	EntriesLink string
	// display-only, used for the url log
	JamName string
}

// Analyze runs the whole pipeline for one request: scrape the two HTML
// pages, recover the hidden JSON feeds, aggregate (through the cache)
// and place the rated game within the jam's distribution.
func (s Service) Analyze(ctx context.Context, req Request) (JamGraphResult, error) {
	ctx, span := tracer.Start(ctx, "Analyze")
	defer span.End()

	span.SetAttributes(
		attribute.String("rate_link", req.RateLink),
		attribute.String("entries_link", req.EntriesLink),
	)

	page, err := s.client.ScrapeJam(ctx, req.EntriesLink, req.RateLink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scrape jam pages")
		return JamGraphResult{}, err
	}

	agg, err := s.aggregate(ctx, page.EntriesJSON)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to aggregate jam")
		return JamGraphResult{}, err
	}

	result, err := Assemble(agg, page, req.RateLink, s.client.BaseUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to assemble result")
		return JamGraphResult{}, err
	}

	s.logURL(ctx, req)

	return result, nil
}

// aggregate returns the cached per-jam dataset, recomputing it from the
// upstream feeds on a miss, on expiry or on a corrupt cache entry.
func (s Service) aggregate(ctx context.Context, entriesJSON string) (jamstats.Aggregate, error) {
	ctx, span := tracer.Start(ctx, "aggregate")
	defer span.End()

	agg, err := s.cache.get(ctx, entriesJSON)
	if err == nil {
		return agg, nil
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		span.AddEvent("cache entry corrupt, recomputing")
	} else if !errors.Is(err, errAggregateNotFound) {
		return jamstats.Aggregate{}, err
	}

	raw, err := s.client.FetchEntries(ctx, entriesJSON)
	if err != nil {
		return jamstats.Aggregate{}, err
	}
	subs := itchio.ParseSubmissions(raw)

	results, hasResults, err := s.client.FetchResults(ctx, entriesJSON)
	if err != nil {
		return jamstats.Aggregate{}, err
	}
	if !hasResults {
		results = nil
	}

	var join jamstats.ResultJoiner
	if s.join != nil {
		join = s.join(subs)
	}
	agg = jamstats.BuildAggregate(subs, results, join)

	err = s.cache.set(ctx, entriesJSON, agg)
	if err != nil {
		// an uncacheable aggregate is still a valid aggregate
		slog.WarnContext(ctx, "failed to cache aggregate", "err", err)
		span.RecordError(err)
	}

	return agg, nil
}

// logURL records the analyzed (jam, game) pair for sitemap generation.
// Fire and forget, the main request never waits on or fails with it.
func (s Service) logURL(ctx context.Context, req Request) {
	if s.qry == nil || req.JamName == "" {
		return
	}

	_, rateID, found := strings.Cut(req.RateLink, "/rate/")
	if !found {
		return
	}
	path := "/jam/" + req.JamName + "/" + rateID

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*5)
		defer cancel()

		err := s.qry.AddUrl(ctx, db.AddUrlParams{
			Path:      path,
			CreatedAt: time.Now().Unix(),
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to log analyzed url", "path", path, "err", err)
		}
	}()
}

// Sitemap lists every analyzed url path, most recent first.
func (s Service) Sitemap(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Sitemap")
	defer span.End()

	if s.qry == nil {
		return nil, nil
	}
	rows, err := s.qry.ListUrls(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list analyzed urls")
		return nil, err
	}

	paths := make([]string, len(rows))
	for i, r := range rows {
		paths[i] = r.Path
	}
	return paths, nil
}
