package rest

import (
	"context"
	"maps"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the client used to execute requests. The caller owns
// it; SSLVerify, CAFile and TransportOptions are not applied to it.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithSSLVerify enables or disables server certificate verification.
func WithSSLVerify(verify bool) Option {
	return func(c *Client) {
		c.settings.SSLVerify = verify
	}
}

// WithCAFile validates the server certificate against the PEM bundle at path
// instead of the system trust store.
func WithCAFile(path string) Option {
	return func(c *Client) {
		c.settings.CAFile = path
	}
}

// WithTransport applies transport overrides on top of the defaults.
func WithTransport(o TransportOptions) Option {
	return func(c *Client) {
		c.settings.Transport = c.settings.Transport.Merge(o)
	}
}

// WithTransportOverrides is WithTransport for a loose key/value map.
// Unknown keys make every request fail with a config error.
func WithTransportOverrides(m map[string]any) Option {
	return func(c *Client) {
		o, err := ParseTransportOptions(m)
		if err != nil {
			c.optionErr = err
			return
		}
		c.settings.Transport = c.settings.Transport.Merge(o)
	}
}

// WithLogger sets the logger. By default the client does not log.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver reports every finished request to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithRequestID sends a fresh UUID in header with every request.
func WithRequestID(header string) Option {
	return func(c *Client) {
		c.requestIDHeader = header
	}
}

// RequestOption holds options for individual requests
type RequestOption struct {
	ctx    context.Context
	header map[string]string
}

// WithContext sets the context of the request.
func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

// WithHeader sets extra headers on the request. Authorization cannot be overridden.
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.header, header)
	}
}

// reset clears the option for reuse
func (opt *RequestOption) reset() {
	opt.ctx = nil
	clear(opt.header)
}
