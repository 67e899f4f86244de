package log

import (
	"github.com/rs/zerolog"
)

// G is the process-wide logger.
var G *Logger

func init() {
	G = New(WithLevel(zerolog.InfoLevel))
}

// SetGlobalLogger replaces G.
func SetGlobalLogger(logger *Logger) {
	G = logger
}

// SetGlobalLevel changes the level of G.
func SetGlobalLevel(level zerolog.Level) {
	G.level = level
	G.Logger = G.Logger.Level(level)
}

func Debug() *zerolog.Event {
	return G.Debug()
}

func Info() *zerolog.Event {
	return G.Info()
}

func Warn() *zerolog.Event {
	return G.Warn()
}

// Error returns an error event with the stack attached.
func Error() *zerolog.Event {
	return G.Error().Stack()
}

func Debugf(format string, args ...any) {
	G.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	G.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	G.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	G.Error().Stack().Msgf(format, args...)
}
