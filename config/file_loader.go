package config

import (
	stderrors "errors"
	"path"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kochabx/avatax/core/validator"
	"github.com/kochabx/avatax/errors"
)

// FileLoader reads a YAML file, overlays environment variables and decodes
// the result strictly.
type FileLoader struct {
	viper     *viper.Viper
	validate  validator.Validator
	name      string
	paths     []string
	file      string
	envPrefix string
	defaults  any
}

// FileOption configures a FileLoader.
type FileOption func(*FileLoader)

// WithConfigFile reads path instead of searching for name.
func WithConfigFile(path string) FileOption {
	return func(l *FileLoader) {
		l.file = path
	}
}

// WithEnv sets the environment variable prefix.
func WithEnv(prefix string) FileOption {
	return func(l *FileLoader) {
		l.envPrefix = prefix
	}
}

// WithDefaultValues registers defaults from a struct.
func WithDefaultValues(defaults any) FileOption {
	return func(l *FileLoader) {
		l.defaults = defaults
	}
}

// NewFileLoader creates a loader searching paths for name.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator, opts ...FileOption) *FileLoader {
	l := &FileLoader{
		viper:     v,
		validate:  validate,
		name:      name,
		paths:     paths,
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(strings.TrimSuffix(name, path.Ext(name)))
		v.SetConfigType(strings.TrimPrefix(path.Ext(name), "."))
	}

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return l
}

// Load implements Loader. A missing file is not an error unless one was
// named explicitly.
func (l *FileLoader) Load(target any) error {
	if l.defaults != nil {
		if err := l.registerDefaults(); err != nil {
			return &errors.ConfigError{Field: "config", Reason: "defaults could not be registered", Err: err}
		}
	}

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !stderrors.As(err, &notFound) {
			return &errors.ConfigError{Field: "config", Value: l.file, Reason: "configuration file could not be read", Err: err}
		}
	}

	if err := l.viper.UnmarshalExact(target, viper.DecodeHook(decodeHook())); err != nil {
		return &errors.ConfigError{Field: "config", Reason: "configuration could not be decoded", Err: err}
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			ce := &errors.ConfigError{Field: "config", Reason: "configuration is invalid", Err: err}
			if fe := validator.FirstError(err); fe != nil {
				ce.Field = fe.Key()
				ce.Reason = fe.Message()
			}
			return ce
		}
	}

	return nil
}

// ConfigFileUsed returns the file that was read, if any.
func (l *FileLoader) ConfigFileUsed() string {
	return l.viper.ConfigFileUsed()
}

func (l *FileLoader) registerDefaults() error {
	var m map[string]any
	if err := mapstructure.Decode(l.defaults, &m); err != nil {
		return err
	}
	for k, v := range m {
		l.viper.SetDefault(k, v)
	}
	return nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}
