package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for talking to the trust authority.
// It embeds *resty.Client to expose all of its methods directly while
// leaving room for transport-level extensions (retry policy, tracing).
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient with a default-configured underlying
// resty.Client. Each call returns an independent instance with its own
// connection pool and state; the adapter layer configures the base URL,
// timeout and authentication on top of it.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
