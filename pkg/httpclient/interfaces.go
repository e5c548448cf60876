package httpclient

import "context"

// Response is the minimal view of an HTTP response exposed to callers.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts outbound HTTP so callers can swap transports or inject
// mocks in tests. Implementations must be safe for concurrent use.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
