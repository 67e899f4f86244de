package rest

import (
	"github.com/kochabx/avatax/core/validator"
	"github.com/kochabx/avatax/errors"
)

// Settings is the client configuration. A Client copies it on construction
// and never changes it afterwards.
type Settings struct {
	// URL is the API base URL; request paths are appended to it verbatim.
	URL string `mapstructure:"url" json:"url" validate:"required,url"`
	// Account is the account number or username.
	Account string `mapstructure:"account" json:"account" validate:"required"`
	// License is the license key or password.
	License string `mapstructure:"license" json:"-" validate:"required"`
	// SSLVerify enables server certificate verification. DefaultSettings
	// turns it on; a zero Settings literal leaves it off.
	SSLVerify bool `mapstructure:"ssl_verify" json:"ssl_verify"`
	// CAFile is a PEM bundle used instead of the system trust store.
	CAFile string `mapstructure:"ca_file" json:"ca_file,omitempty"`
	// Transport overrides the transport defaults.
	Transport TransportOptions `mapstructure:"transport" json:"transport"`
}

// DefaultSettings returns settings with certificate verification on and the
// default transport options.
func DefaultSettings() Settings {
	return Settings{
		SSLVerify: true,
		Transport: DefaultTransportOptions(),
	}
}

var settingsReasons = map[string]string{
	"url":     "a valid service URL is required",
	"account": "account number or username is required",
	"license": "license key or password is required",
}

// Validate checks URL, account and license in that order and returns a
// *errors.ConfigError for the first one at fault.
func (s Settings) Validate() error {
	err := validator.Validate.Struct(&s)
	if err == nil {
		return nil
	}

	fe := validator.FirstError(err)
	if fe == nil {
		return &errors.ConfigError{Field: "settings", Reason: "settings could not be validated", Err: err}
	}

	reason, ok := settingsReasons[fe.Key()]
	if !ok {
		reason = fe.Message()
	}

	ce := &errors.ConfigError{Field: fe.Key(), Reason: reason}
	if fe.Key() == "url" {
		ce.Value = s.URL
	}
	return ce
}

// Redacted returns a copy safe to print or log.
func (s Settings) Redacted() Settings {
	if s.License != "" {
		s.License = "******"
	}
	return s
}
