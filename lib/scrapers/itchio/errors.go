package itchio

import "fmt"

// ErrNoEntriesScript means no inline script on the entries page contained
// the entries.json marker. This indicates the site's internal markup
// changed and is not retryable.
var ErrNoEntriesScript = fmt.Errorf("no script tag containing the entries.json marker was found")

// ErrEntriesURLNotFound means the marker script was found but the
// entries_url key could not be sliced out of it.
var ErrEntriesURLNotFound = fmt.Errorf("could not extract entries_url from the browse entries script")

// UpstreamError wraps a network or HTTP-status failure while reaching
// itch.io. Callers should surface it as-is and let the next cache expiry
// retry, there is no internal backoff.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream fetch %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("upstream fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
