package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/avatax/log/desensitize"
)

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the minimum level.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// WithCaller records the calling file and line.
func WithCaller() Option {
	return func(l *Logger) {
		l.caller = true
	}
}

// WithCallerSkip is WithCaller with extra frames skipped.
func WithCallerSkip(skip int) Option {
	return func(l *Logger) {
		l.caller = true
		l.callerSkip = skip
	}
}

// WithDesensitize masks output with hook.
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(l *Logger) {
		l.desensitizeHook = hook
	}
}
