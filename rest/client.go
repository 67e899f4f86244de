package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kochabx/avatax/errors"
)

// Client authenticates against the tax API and forwards requests to it.
// It is safe for concurrent use; its settings never change after New.
type Client struct {
	settings        Settings
	doer            Doer
	optionErr       error
	buildErr        error
	logger          zerolog.Logger
	observer        Observer
	requestIDHeader string
	requestOptPool  sync.Pool
}

// Response is the raw outcome of an exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// New creates a client for the API at url, mirroring the positional
// constructor of other tax API SDKs. Certificate verification is on unless
// WithSSLVerify(false) is given.
func New(url, account, license string, opts ...Option) *Client {
	s := DefaultSettings()
	s.URL = url
	s.Account = account
	s.License = license
	return NewWithSettings(s, opts...)
}

// NewWithSettings creates a client from s. Settings are not validated here:
// the first request reports any problem as a *errors.ConfigError.
func NewWithSettings(s Settings, opts ...Option) *Client {
	c := &Client{
		settings: s,
		logger:   zerolog.Nop(),
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{header: make(map[string]string, 4)}
			},
		},
	}
	c.settings.Transport = DefaultTransportOptions().Merge(s.Transport)

	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		hc, err := newHTTPClient(c.settings)
		if err != nil {
			c.buildErr = err
		} else {
			c.doer = hc
		}
	}

	return c
}

// Settings returns a copy of the client settings. Pointer fields of the
// transport options point at fresh values.
func (cli *Client) Settings() Settings {
	s := cli.settings
	if v := s.Transport.SSLVerify; v != nil {
		verify := *v
		s.Transport.SSLVerify = &verify
	}
	if v := s.Transport.CAFile; v != nil {
		caFile := *v
		s.Transport.CAFile = &caFile
	}
	return s
}

// Request sends path to the API and returns the response body unmodified.
// A nil payload issues a GET; any other payload is sent as a JSON POST.
// Typed nils count as nil, but an empty map or slice is present and is
// posted as {} or [].
func (cli *Client) Request(path string, payload any, opts ...func(*RequestOption)) (string, error) {
	resp, err := cli.Exchange(path, payload, opts...)
	if err != nil {
		return "", err
	}
	return resp.Body, nil
}

// Get performs a GET request
func (cli *Client) Get(path string, opts ...func(*RequestOption)) (string, error) {
	return cli.Request(path, nil, opts...)
}

// Post performs a POST request with JSON body
func (cli *Client) Post(path string, payload any, opts ...func(*RequestOption)) (string, error) {
	return cli.Request(path, payload, opts...)
}

// Exchange is Request returning the status code and headers along with the body.
func (cli *Client) Exchange(path string, payload any, opts ...func(*RequestOption)) (resp *Response, err error) {
	method := MethodGet
	if !isNil(payload) {
		method = MethodPost
	}
	target := cli.settings.URL + path

	start := time.Now()
	defer func() {
		cli.finish(method, target, resp, err, time.Since(start))
	}()

	if err := cli.preflight(); err != nil {
		return nil, err
	}

	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)
	for _, o := range opts {
		o(opt)
	}

	ctx := opt.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := cli.createRequest(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	cli.setRequestHeaders(req, opt.header)

	cli.logger.Debug().Str("method", method).Str("url", target).Msg("sending request")

	httpResp, err := cli.doer.Do(req)
	if err != nil {
		return nil, newTransportError(transportCode(err), method, target, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		code := transportCode(err)
		if code == errors.TransportUnknown || code == errors.TransportGotNothing {
			code = errors.TransportReceive
		}
		return nil, newTransportError(code, method, target, err)
	}

	if len(body) == 0 {
		return nil, &errors.EmptyResponseError{Method: method, URL: target, StatusCode: httpResp.StatusCode}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       string(body),
	}, nil
}

// preflight runs every check that must pass before any network activity.
func (cli *Client) preflight() error {
	if err := cli.settings.Validate(); err != nil {
		return err
	}
	if cli.optionErr != nil {
		return cli.optionErr
	}
	return cli.buildErr
}

// createRequest creates an HTTP request with the appropriate body
func (cli *Client) createRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	switch v := payload.(type) {
	case nil:
	case io.Reader:
		if !isNil(v) {
			body = v
		}
	default:
		if isNil(v) {
			break
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, &errors.ConfigError{Field: "payload", Reason: "payload cannot be encoded as JSON", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, newTransportError(errors.TransportMalformedURL, method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", ContentTypeJSON)
	}
	return req, nil
}

// setRequestHeaders sets caller headers, then the ones the client owns.
func (cli *Client) setRequestHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if ua := cli.settings.Transport.UserAgent; ua != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ua)
	}
	if cli.requestIDHeader != "" && req.Header.Get(cli.requestIDHeader) == "" {
		req.Header.Set(cli.requestIDHeader, uuid.NewString())
	}

	req.SetBasicAuth(cli.settings.Account, cli.settings.License)
}

func (cli *Client) finish(method, url string, resp *Response, err error, elapsed time.Duration) {
	outcome, status := "success", 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		outcome = errors.KindOf(err).String()
		var empty *errors.EmptyResponseError
		if errors.As(err, &empty) {
			status = empty.StatusCode
		}
		cli.logger.Warn().Err(err).Str("kind", outcome).Str("method", method).Str("url", url).Dur("elapsed", elapsed).Msg("request failed")
	} else {
		cli.logger.Debug().Str("method", method).Str("url", url).Int("status", status).Int("bytes", len(resp.Body)).Dur("elapsed", elapsed).Msg("request completed")
	}

	if cli.observer != nil {
		cli.observer.ObserveRequest(method, outcome, status, elapsed)
	}
}

// getRequestOption retrieves a RequestOption from the pool
func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset()
	return opt
}

// putRequestOption returns a RequestOption to the pool
func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

// isNil reports whether v is nil or a typed nil (pointer, map, slice, ...).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
