// Package config loads configuration from YAML files, environment variables
// and bound command line flags.
package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/avatax/core/validator"
)

// Default file lookup.
const (
	DefaultName      = "avatax.yaml"
	DefaultEnvPrefix = "AVATAX"
)

// Config loads configuration into target.
type Config struct {
	mu       sync.Mutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	fileOpts []FileOption
}

// New creates a Config for target. Without WithLoader it reads avatax.yaml
// from the working directory or $HOME/.avatax.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoader(DefaultName, DefaultPaths(), c.viper, c.validate, c.fileOpts...)
	}

	return c
}

// Load reads the configuration into the target.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// GetViper returns the underlying viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}

// DefaultPaths lists the directories searched for the configuration file.
func DefaultPaths() []string {
	return []string{".", "$HOME/.avatax"}
}
