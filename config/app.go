package config

import (
	"github.com/kochabx/avatax/log"
	"github.com/kochabx/avatax/rest"
)

// App is the configuration of the avatax command.
//
//	client:
//	  url: https://development.avalara.net
//	  account: "1100012345"
//	  license: 1A2B3C4D5E6F7G8H
//	  transport:
//	    connect_timeout: 5s
//	log:
//	  level: debug
type App struct {
	// Client is validated per request, after flags have been applied.
	Client rest.Settings `mapstructure:"client" validate:"-"`
	Log    log.Config    `mapstructure:"log"`
	// RequestIDHeader, when set, carries a fresh UUID on every request.
	RequestIDHeader string  `mapstructure:"request_id_header"`
	Metrics         Metrics `mapstructure:"metrics"`
}

// Metrics configures the prometheus textfile dump.
type Metrics struct {
	Textfile string `mapstructure:"textfile"`
}

// DefaultApp returns the built-in defaults.
func DefaultApp() App {
	return App{
		Client: rest.DefaultSettings(),
		Log:    log.DefaultConfig(),
	}
}

// LoadApp loads App from file (or the default locations when empty),
// the environment and any flags bound on the viper passed via WithViper.
func LoadApp(file string, opts ...Option) (*App, error) {
	app := DefaultApp()

	base := []Option{WithDefaults(DefaultApp())}
	if file != "" {
		base = append(base, WithFile(file))
	}

	if err := New(&app, append(base, opts...)...).Load(); err != nil {
		return nil, err
	}
	return &app, nil
}
