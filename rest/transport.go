package rest

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kochabx/avatax/errors"
)

// DefaultConnectTimeout bounds connection establishment.
const DefaultConnectTimeout = 10 * time.Second

// TransportOptions enumerates the knobs of the underlying HTTP transport.
// Zero values mean "keep the default"; see Merge.
type TransportOptions struct {
	// ConnectTimeout bounds dialing the server.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout,omitempty"`
	// TLSHandshakeTimeout bounds the TLS handshake. Defaults to ConnectTimeout.
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout" json:"tls_handshake_timeout,omitempty"`
	// ResponseHeaderTimeout bounds the wait for response headers. Zero waits forever.
	ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout" json:"response_header_timeout,omitempty"`
	// Timeout bounds the whole exchange. Zero means only connection
	// establishment is bounded.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
	// KeepAlive lets connections be reused between requests. When false
	// every request opens and closes its own connection.
	KeepAlive bool `mapstructure:"keep_alive" json:"keep_alive,omitempty"`
	// Proxy is a proxy URL. Empty falls back to HTTP_PROXY/HTTPS_PROXY.
	Proxy string `mapstructure:"proxy" json:"proxy,omitempty"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" json:"user_agent,omitempty"`
	// ServerName overrides the name used for SNI and certificate verification.
	ServerName string `mapstructure:"server_name" json:"server_name,omitempty"`
	// MinTLSVersion is one of "1.0", "1.1", "1.2", "1.3".
	MinTLSVersion string `mapstructure:"min_tls_version" json:"min_tls_version,omitempty"`
	// SSLVerify, when set, overrides Settings.SSLVerify.
	SSLVerify *bool `mapstructure:"ssl_verify" json:"ssl_verify,omitempty"`
	// CAFile, when set, overrides Settings.CAFile.
	CAFile *string `mapstructure:"ca_file" json:"ca_file,omitempty"`
	// DisableCompression turns off transparent gzip.
	DisableCompression bool `mapstructure:"disable_compression" json:"disable_compression,omitempty"`
	// FollowRedirects follows 3xx responses. When false the 3xx response
	// itself is returned.
	FollowRedirects bool `mapstructure:"follow_redirects" json:"follow_redirects,omitempty"`
}

// DefaultTransportOptions returns the transport defaults.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		ConnectTimeout: DefaultConnectTimeout,
		UserAgent:      DefaultUserAgent,
		MinTLSVersion:  "1.2",
	}
}

// Merge returns o with every non-zero field of override applied on top.
func (o TransportOptions) Merge(override TransportOptions) TransportOptions {
	if override.ConnectTimeout > 0 {
		o.ConnectTimeout = override.ConnectTimeout
	}
	if override.TLSHandshakeTimeout > 0 {
		o.TLSHandshakeTimeout = override.TLSHandshakeTimeout
	}
	if override.ResponseHeaderTimeout > 0 {
		o.ResponseHeaderTimeout = override.ResponseHeaderTimeout
	}
	if override.Timeout > 0 {
		o.Timeout = override.Timeout
	}
	if override.KeepAlive {
		o.KeepAlive = true
	}
	if override.Proxy != "" {
		o.Proxy = override.Proxy
	}
	if override.UserAgent != "" {
		o.UserAgent = override.UserAgent
	}
	if override.ServerName != "" {
		o.ServerName = override.ServerName
	}
	if override.MinTLSVersion != "" {
		o.MinTLSVersion = override.MinTLSVersion
	}
	if override.SSLVerify != nil {
		v := *override.SSLVerify
		o.SSLVerify = &v
	}
	if override.CAFile != nil {
		v := *override.CAFile
		o.CAFile = &v
	}
	if override.DisableCompression {
		o.DisableCompression = true
	}
	if override.FollowRedirects {
		o.FollowRedirects = true
	}
	return o
}

// ParseTransportOptions decodes a loose key/value map such as one read from
// a config file. Durations may be given as strings ("5s") or nanoseconds.
// Unknown keys are rejected.
func ParseTransportOptions(m map[string]any) (TransportOptions, error) {
	var o TransportOptions
	if len(m) == 0 {
		return o, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &o,
	})
	if err != nil {
		return o, err
	}

	if err := dec.Decode(m); err != nil {
		return TransportOptions{}, &errors.ConfigError{
			Field:  "transport",
			Reason: "invalid transport options",
			Err:    err,
		}
	}
	return o, nil
}

var tlsVersions = map[string]uint16{
	"1.0": tls.VersionTLS10,
	"1.1": tls.VersionTLS11,
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// newHTTPClient builds the explicitly owned HTTP client for s.
func newHTTPClient(s Settings) (*http.Client, error) {
	o := s.Transport

	verify := s.SSLVerify
	if o.SSLVerify != nil {
		verify = *o.SSLVerify
	}
	caFile := s.CAFile
	if o.CAFile != nil {
		caFile = *o.CAFile
	}

	tlsConfig, err := newTLSConfig(o, verify, caFile)
	if err != nil {
		return nil, err
	}

	proxy := http.ProxyFromEnvironment
	if o.Proxy != "" {
		u, err := url.Parse(o.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, &errors.ConfigError{Field: "transport", Value: o.Proxy, Reason: "invalid proxy URL", Err: err}
		}
		proxy = http.ProxyURL(u)
	}

	handshake := o.TLSHandshakeTimeout
	if handshake <= 0 {
		handshake = o.ConnectTimeout
	}

	dialer := &net.Dialer{
		Timeout:   o.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 proxy,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   handshake,
		ResponseHeaderTimeout: o.ResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		DisableKeepAlives:     !o.KeepAlive,
		DisableCompression:    o.DisableCompression,
		ForceAttemptHTTP2:     true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   o.Timeout,
	}
	if !o.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}

func newTLSConfig(o TransportOptions, verify bool, caFile string) (*tls.Config, error) {
	minVersion, ok := tlsVersions[o.MinTLSVersion]
	if !ok {
		return nil, &errors.ConfigError{Field: "transport", Value: o.MinTLSVersion, Reason: "unsupported min_tls_version"}
	}

	cfg := &tls.Config{
		MinVersion:         minVersion,
		ServerName:         o.ServerName,
		InsecureSkipVerify: !verify, //nolint:gosec // opt-in through ssl_verify=false
	}

	if caFile == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, &errors.ConfigError{Field: "ca_file", Value: caFile, Reason: "unable to read CA file", Err: err}
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, &errors.ConfigError{Field: "ca_file", Value: caFile, Reason: "no PEM certificates found in CA file"}
	}
	cfg.RootCAs = pool

	return cfg, nil
}
