package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/avatax/core/validator"
)

// Option configures a Config.
type Option func(*Config)

// WithViper sets the viper instance, typically one with flags already bound.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator replaces the validator. A nil validator disables validation.
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader replaces the default file loader.
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile reads exactly this file; it must exist.
func WithFile(path string) Option {
	return func(c *Config) {
		c.fileOpts = append(c.fileOpts, WithConfigFile(path))
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.fileOpts = append(c.fileOpts, WithEnv(prefix))
	}
}

// WithDefaults registers every key of defaults, a struct with mapstructure
// tags, so environment variables can override keys absent from the file.
func WithDefaults(defaults any) Option {
	return func(c *Config) {
		c.fileOpts = append(c.fileOpts, WithDefaultValues(defaults))
	}
}
