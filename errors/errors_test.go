package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(401, "unauthorized access")
	assert.Equal(t, 401, err.GetCode())
	assert.Equal(t, "unauthorized access", err.GetMessage())
	assert.Equal(t, KindUnknown, err.Kind())
	assert.Equal(t, "code=401, message=unauthorized access", err.Error())
}

func TestWithMetadata(t *testing.T) {
	err := New(400, "bad settings")

	same := err.WithMetadata(map[string]string{})
	assert.Same(t, err, same)

	withMeta := err.WithMetadata(map[string]string{"field": "url", "action": "request"})
	assert.NotSame(t, err, withMeta)
	assert.Nil(t, err.GetMetadata())
	assert.Equal(t, map[string]string{"field": "url", "action": "request"}, withMeta.GetMetadata())
	assert.Equal(t, "code=400, message=bad settings, metadata={action=request, field=url}", withMeta.Error())
}

func TestWithCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, 503, "service unavailable")

	assert.Same(t, cause, err.GetCause())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, 503, "ignored"))
}

func TestFromError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		ge := FromError(errors.New("boom"))
		assert.Equal(t, UnknownCode, ge.GetCode())
		assert.Equal(t, KindUnknown, ge.Kind())
	})

	t.Run("same instance", func(t *testing.T) {
		existing := New(404, "not found")
		assert.Same(t, existing, FromError(existing))
	})

	t.Run("config variant", func(t *testing.T) {
		ge := FromError(&ConfigError{Field: "license", Reason: "license key or password is required"})
		assert.Equal(t, CodeConfig, ge.GetCode())
		assert.Equal(t, KindConfig, ge.Kind())
		assert.Equal(t, "license", ge.GetMetadata()["field"])
	})

	t.Run("wrapped transport variant", func(t *testing.T) {
		cause := errors.New("i/o timeout")
		te := &TransportError{Code: TransportTimedOut, Message: TransportTimedOut.String(), Method: "GET", URL: "https://api.example.com/x", Err: cause}
		ge := FromError(fmt.Errorf("calculate: %w", te))
		assert.Equal(t, CodeTimeout, ge.GetCode())
		assert.Equal(t, KindTransport, ge.Kind())
		assert.Equal(t, "28", ge.GetMetadata()["transport_code"])
		assert.ErrorIs(t, ge, cause)
	})

	assert.Nil(t, FromError(nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("x"), KindUnknown},
		{"config", &ConfigError{Field: "url"}, KindConfig},
		{"transport", &TransportError{Code: TransportConnect}, KindTransport},
		{"empty", &EmptyResponseError{StatusCode: 200}, KindEmptyResponse},
		{"wrapped empty", fmt.Errorf("outer: %w", &EmptyResponseError{}), KindEmptyResponse},
		{"envelope", FromError(&ConfigError{Field: "account"}), KindConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}

	assert.True(t, IsConfig(&ConfigError{}))
	assert.True(t, IsTransport(&TransportError{}))
	assert.True(t, IsEmptyResponse(&EmptyResponseError{}))
	assert.False(t, IsTransport(&EmptyResponseError{}))
}

func TestTransportErrorFields(t *testing.T) {
	cause := errors.New("no such host")
	err := &TransportError{
		Code:    TransportHostResolve,
		Message: TransportHostResolve.String(),
		Method:  "POST",
		URL:     "https://nowhere.invalid/tax/get",
		Err:     cause,
	}

	var te *TransportError
	require.True(t, As(fmt.Errorf("wrapped: %w", err), &te))
	assert.Equal(t, TransportHostResolve, te.Code)
	assert.Equal(t, "POST https://nowhere.invalid/tax/get: transport error (6): Couldn't resolve host name: no such host", te.Error())
	assert.Equal(t, CodeTransport, te.Status().Code)
	assert.ErrorIs(t, err, cause)
}

func TestTransportCodeString(t *testing.T) {
	assert.Equal(t, "Couldn't connect to server", TransportConnect.String())
	assert.Equal(t, "Unknown error", TransportCode(999).String())
}

func TestEmptyResponseError(t *testing.T) {
	err := &EmptyResponseError{Method: "GET", URL: "https://api.example.com/ping", StatusCode: 204}
	assert.Equal(t, "GET https://api.example.com/ping: received empty result from API (status 204)", err.Error())
	assert.Equal(t, "204", err.Status().Metadata["http_status"])
}

func TestEnvelopeIs(t *testing.T) {
	a := FromError(&ConfigError{Field: "url", Reason: "a valid service URL is required"})
	b := FromError(&ConfigError{Field: "url", Reason: "a valid service URL is required"})
	c := FromError(&ConfigError{Field: "account", Reason: "account number or username is required"})

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestJoinKeepsKind(t *testing.T) {
	joined := Join(nil, errors.New("log flush failed"), &EmptyResponseError{Method: "GET", StatusCode: 200})
	assert.Equal(t, KindEmptyResponse, KindOf(joined))
	assert.Nil(t, Join(nil, nil))
}

func BenchmarkErrorString(b *testing.B) {
	err := New(503, "service unavailable").
		WithMetadata(map[string]string{"method": "GET", "url": "https://api.example.com"}).
		WithCause(errors.New("connection refused"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
