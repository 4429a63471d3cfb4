package odoo

import (
	"net/http"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The client should carry a cookie jar
// if the backend session cookie is expected to travel with each call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing and swallowed errors.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSequentialIDs makes correlation ids a per-client increasing counter
// instead of random integers.
func WithSequentialIDs() Option {
	return func(c *Client) {
		c.nextID = c.sequentialID
	}
}
