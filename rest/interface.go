package rest

import (
	"net/http"
	"time"
)

// Doer executes a prepared request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Requester defines the request operation of a Client.
type Requester interface {
	Request(path string, payload any, opts ...func(*RequestOption)) (string, error)
}

// Observer receives one call per finished request.
// outcome is "success" or the errors.Kind string of the failure.
type Observer interface {
	ObserveRequest(method, outcome string, status int, elapsed time.Duration)
}

var _ Requester = (*Client)(nil)
