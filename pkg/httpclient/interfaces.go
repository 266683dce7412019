package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// BasicAuth carries a username/password pair sent with a request.
type BasicAuth struct {
	Username string
	Password string
}

// Request describes a single HTTP exchange. URL must be absolute.
type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	BasicAuth *BasicAuth
	// Body is serialized as JSON when non-nil.
	Body any
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
