package analyzer

import "fmt"

// ErrGameNotFound means the caller-supplied rate link does not match any
// submission in the jam's entry list. This is a user input error and
// must surface as a 4xx-equivalent, never a crash.
var ErrGameNotFound = fmt.Errorf("the rate link does not match any submission in this jam")

// EncodeError is a failure compressing an aggregate for the cache. The
// caller must skip caching and continue with the in-memory value.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode aggregate: %s", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError is a corrupt cache entry. The caller must treat it as a
// cache miss and recompute.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode cached aggregate: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
