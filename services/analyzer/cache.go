package analyzer

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"net/url"
	"time"

	"jamlytics-backend/lib/jamstats"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errAggregateNotFound = badger.ErrKeyNotFound

type cachedAggregate struct {
	Payload []byte

	ExpiresAt int64
}

// aggregateCache holds one compressed Aggregate per jam, keyed by the
// normalized entries.json address. Entries are replaced wholesale on
// expiry, never partially updated.
type aggregateCache struct {
	db    *badger.DB
	codec Codec
	ttl   time.Duration
}

func (c aggregateCache) key(entriesLink string) (string, error) {
	full, err := url.Parse(entriesLink)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		full,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return "jam:" + normalized, nil
}

func (c aggregateCache) get(ctx context.Context, entriesLink string) (jamstats.Aggregate, error) {
	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()

	key, err := c.key(entriesLink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return jamstats.Aggregate{}, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()
	item, err := tx.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return jamstats.Aggregate{}, errAggregateNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return jamstats.Aggregate{}, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return jamstats.Aggregate{}, err
	}

	var cached cachedAggregate
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return jamstats.Aggregate{}, &DecodeError{Err: err}
	}

	if time.Now().Unix() >= cached.ExpiresAt {
		span.AddEvent("delete expired cache key", trace.WithAttributes(
			attribute.String("key", key),
		))

		tx := c.db.NewTransaction(true)
		defer tx.Commit()

		err = tx.Delete([]byte(key))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete expired key")
		}
		return jamstats.Aggregate{}, errAggregateNotFound
	}

	agg, err := c.codec.Decode(cached.Payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache entry corrupt")
		return jamstats.Aggregate{}, err
	}

	span.AddEvent("returned cached aggregate", trace.WithAttributes(
		attribute.Int("num_games", agg.NumGames),
		attribute.Int("payload_bytes", len(cached.Payload)),
	))
	return agg, nil
}

func (c aggregateCache) set(ctx context.Context, entriesLink string, agg jamstats.Aggregate) error {
	ctx, span := tracer.Start(ctx, "cache:set")
	defer span.End()

	key, err := c.key(entriesLink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	payload, err := c.codec.Encode(agg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to encode aggregate")
		return err
	}
	span.SetAttributes(attribute.Int("payload_bytes", len(payload)))

	serialized := bytes.NewBuffer(nil)
	err = gob.NewEncoder(serialized).Encode(cachedAggregate{
		Payload:   payload,
		ExpiresAt: time.Now().Add(c.ttl).Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize cache entry")
		return &EncodeError{Err: err}
	}

	tx := c.db.NewTransaction(true)
	defer tx.Commit()

	err = tx.Set([]byte(key), serialized.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}

	return nil
}
