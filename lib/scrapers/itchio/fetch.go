package itchio

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchEntries downloads the bulk submission list for a jam.
func (c *Client) FetchEntries(ctx context.Context, entriesURL string) ([]RawSubmission, error) {
	ctx, span := tracer.Start(ctx, "FetchEntries")
	defer span.End()
	span.SetAttributes(attribute.String("url", entriesURL))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(entriesURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch entries.json")
		return nil, &UpstreamError{URL: entriesURL, Err: err}
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "unexpected entries.json status")
		return nil, &UpstreamError{URL: entriesURL, StatusCode: res.StatusCode()}
	}

	var doc entriesDocument
	err = json.Unmarshal(res.Body(), &doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to unmarshal entries.json")
		return nil, &UpstreamError{URL: entriesURL, Err: err}
	}

	span.SetAttributes(attribute.Int("submissions", len(doc.JamGames)))
	return doc.JamGames, nil
}

// FetchResults downloads the judged outcomes for a concluded jam. The
// feed being absent (most commonly a 404 while voting is still open) is
// an expected steady state, not an error: it is reported as ok == false.
func (c *Client) FetchResults(ctx context.Context, entriesURL string) ([]ResultRecord, bool, error) {
	ctx, span := tracer.Start(ctx, "FetchResults")
	defer span.End()

	resultsURL := ResultsURL(entriesURL)
	span.SetAttributes(attribute.String("url", resultsURL))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(resultsURL)
	if err != nil {
		slog.DebugContext(ctx, "results.json unavailable", "url", resultsURL, "err", err)
		return nil, false, nil
	}
	if res.StatusCode() != 200 {
		span.SetAttributes(attribute.Int("status", res.StatusCode()))
		return nil, false, nil
	}

	var doc resultsDocument
	err = json.Unmarshal(res.Body(), &doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to unmarshal results.json")
		return nil, false, nil
	}

	span.SetAttributes(attribute.Int("results", len(doc.Results)))
	return doc.Results, true, nil
}
