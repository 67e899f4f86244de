package errors

import (
	"fmt"
	"strconv"
)

// Kind tags the three ways a request can fail.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig is raised before any network activity.
	KindConfig
	// KindTransport is a connection, DNS, TLS, timeout or read failure.
	KindTransport
	// KindEmptyResponse means the exchange completed but the body was empty.
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Status codes carried by the envelope of each kind.
const (
	CodeConfig        = 400
	CodeEmptyResponse = 502
	CodeTransport     = 503
	CodeTimeout       = 504
)

// KindError is implemented by every request failure variant.
type KindError interface {
	error
	Kind() Kind
	Status() Status
}

// ConfigError reports a missing or malformed client setting.
type ConfigError struct {
	// Field is the settings key at fault: url, account, license, ca_file or transport.
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "invalid " + e.Field + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Kind() Kind { return KindConfig }

func (e *ConfigError) Status() Status {
	return Status{
		Code:     CodeConfig,
		Message:  e.Reason,
		Metadata: map[string]string{"field": e.Field},
	}
}

// TransportError reports a failure of the underlying HTTP client.
type TransportError struct {
	Code    TransportCode
	Message string
	Method  string
	URL     string
	Err     error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s: transport error (%d): %s", e.Method, e.URL, int(e.Code), e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() Kind { return KindTransport }

func (e *TransportError) Status() Status {
	code := CodeTransport
	if e.Code == TransportTimedOut {
		code = CodeTimeout
	}
	return Status{
		Code:    code,
		Message: e.Message,
		Metadata: map[string]string{
			"transport_code": strconv.Itoa(int(e.Code)),
			"method":         e.Method,
			"url":            e.URL,
		},
	}
}

// EmptyResponseError means the server answered without a body.
// StatusCode lets callers tell a 204 apart from an upstream anomaly.
type EmptyResponseError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s %s: received empty result from API (status %d)", e.Method, e.URL, e.StatusCode)
}

func (e *EmptyResponseError) Kind() Kind { return KindEmptyResponse }

func (e *EmptyResponseError) Status() Status {
	return Status{
		Code:    CodeEmptyResponse,
		Message: "received empty result from API",
		Metadata: map[string]string{
			"method":      e.Method,
			"url":         e.URL,
			"http_status": strconv.Itoa(e.StatusCode),
		},
	}
}

// KindOf returns the kind of the first request failure in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if ge, ok := err.(*Error); ok {
		return ge.kind
	}
	var ke KindError
	if As(err, &ke) {
		return ke.Kind()
	}
	return KindUnknown
}

func IsConfig(err error) bool { return KindOf(err) == KindConfig }

func IsTransport(err error) bool { return KindOf(err) == KindTransport }

func IsEmptyResponse(err error) bool { return KindOf(err) == KindEmptyResponse }
