package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"jamlytics-backend/lib/jamstats"

	"github.com/klauspost/compress/gzip"
)

// the cache substrate enforces a per-value size ceiling of about 2MB,
// a full jam aggregate easily exceeds it uncompressed
const DefaultMaxEncodedSize = 2 << 20

// Codec serializes aggregates for the cache: json then gzip. It exists
// as a narrow adapter so the cache substrate can be swapped freely.
// Decode(Encode(x)) == x for all valid aggregates; gob cannot provide
// that here since it drops zero-valued fields, turning a computed zero
// skewness pointer and empty series slices into nil on the way out.
type Codec struct {
	// zero means DefaultMaxEncodedSize
	MaxEncodedSize int
}

func (c Codec) ceiling() int {
	if c.MaxEncodedSize > 0 {
		return c.MaxEncodedSize
	}
	return DefaultMaxEncodedSize
}

func (c Codec) Encode(agg jamstats.Aggregate) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	err := json.NewEncoder(zw).Encode(agg)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	err = zw.Close()
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	if buf.Len() > c.ceiling() {
		return nil, &EncodeError{Err: fmt.Errorf(
			"encoded aggregate is %d bytes, over the %d byte ceiling",
			buf.Len(), c.ceiling(),
		)}
	}
	return buf.Bytes(), nil
}

func (c Codec) Decode(data []byte) (jamstats.Aggregate, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return jamstats.Aggregate{}, &DecodeError{Err: err}
	}

	var agg jamstats.Aggregate
	err = json.NewDecoder(zr).Decode(&agg)
	if err != nil {
		return jamstats.Aggregate{}, &DecodeError{Err: err}
	}
	err = zr.Close()
	if err != nil && err != io.EOF {
		return jamstats.Aggregate{}, &DecodeError{Err: err}
	}
	return agg, nil
}
