package rest

import "net/http"

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

// Common Content-Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Version is reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent is sent unless TransportOptions.UserAgent overrides it.
const DefaultUserAgent = "avatax-go/" + Version
