// Package log wraps zerolog with console and rotating file output and
// masking of credentials.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/avatax/log/desensitize"
	"github.com/kochabx/avatax/log/writer"
)

// Logger is a zerolog.Logger that may own a closable file writer.
type Logger struct {
	zerolog.Logger
	level           zerolog.Level
	caller          bool
	callerSkip      int
	desensitizeHook *desensitize.Hook
	closer          io.Closer
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// GetDesensitizeHook returns the masking hook, or nil.
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.desensitizeHook
}

// Close releases the file writer, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	l := &Logger{level: zerolog.TraceLevel}
	for _, opt := range opts {
		opt(l)
	}

	if l.desensitizeHook != nil {
		w = desensitize.NewWriter(w, l.desensitizeHook)
	}

	ctx := zerolog.New(w).Level(l.level).With().Timestamp()
	switch {
	case l.callerSkip > 0:
		ctx = ctx.CallerWithSkipFrameCount(l.callerSkip)
	case l.caller:
		ctx = ctx.Caller()
	}
	l.Logger = ctx.Logger()
	return l
}

// New logs human-readable lines to stderr.
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(os.Stderr), opts...)
}

// NewWithWriter logs JSON lines to w.
func NewWithWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile logs JSON lines to a rotating file.
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(w, opts...)
	if closer, ok := w.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// NewMulti logs to a rotating file and to the console.
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console(os.Stderr)), opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// NewFromConfig builds a logger from c.
func NewFromConfig(c Config, opts ...Option) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	base := []Option{WithLevel(level)}
	if c.Caller {
		base = append(base, WithCaller())
	}
	if c.Desensitize {
		base = append(base, WithDesensitize(desensitize.NewHook(desensitize.BuiltinRules()...)))
	}
	opts = append(base, opts...)

	switch c.Output {
	case "", OutputConsole:
		if c.Format == FormatJSON {
			return NewWithWriter(os.Stderr, opts...), nil
		}
		return New(opts...), nil
	case OutputFile:
		return NewFile(c.File, opts...)
	case OutputMulti:
		return NewMulti(c.File, opts...)
	default:
		return nil, fmt.Errorf("unsupported log output %q", c.Output)
	}
}
