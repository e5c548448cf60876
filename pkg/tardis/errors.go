package tardis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
// Resolving the key from the environment is the caller's concern, not the
// client's.
var ErrMissingAPIKey = errors.New("tardis: api key is required")

// RequestError reports a failure on the transport side: the request could
// not be sent, the response never arrived, or the API answered with a
// non-success status.
type RequestError struct {
	URL        string
	StatusCode int // zero when the request never completed
	Body       []byte
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tardis: request %s: status %d: %s", e.URL, e.StatusCode, bodySnippet(e.Body))
	}
	return fmt.Sprintf("tardis: request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not parse as the expected
// JSON envelope.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tardis: decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func bodySnippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
