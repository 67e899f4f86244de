package log

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kochabx/avatax/log/writer"
)

// Output destinations.
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputMulti   = "multi"
)

// Console formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects level, destination and masking of the logger.
type Config struct {
	Level       string     `mapstructure:"level" json:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format      string     `mapstructure:"format" json:"format" validate:"omitempty,oneof=text json"`
	Output      string     `mapstructure:"output" json:"output" validate:"omitempty,oneof=console file multi"`
	Caller      bool       `mapstructure:"caller" json:"caller"`
	Desensitize bool       `mapstructure:"desensitize" json:"desensitize"`
	File        FileConfig `mapstructure:"file" json:"file"`
}

// FileConfig configures file output.
type FileConfig struct {
	Filepath   string            `mapstructure:"filepath" json:"filepath"`
	Filename   string            `mapstructure:"filename" json:"filename"`
	FileExt    string            `mapstructure:"file_ext" json:"file_ext"`
	RotateMode writer.RotateMode `mapstructure:"rotate_mode" json:"rotate_mode"`
	Rotatelogs RotatelogsConfig  `mapstructure:"rotatelogs" json:"rotatelogs"`
	Lumberjack LumberjackConfig  `mapstructure:"lumberjack" json:"lumberjack"`
}

// RotatelogsConfig configures rotation by time, in hours.
type RotatelogsConfig struct {
	MaxAge       int `mapstructure:"max_age" json:"max_age"`
	RotationTime int `mapstructure:"rotation_time" json:"rotation_time"`
}

// LumberjackConfig configures rotation by size.
type LumberjackConfig struct {
	MaxSize    int  `mapstructure:"max_size" json:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int  `mapstructure:"max_age" json:"max_age"`
	Compress   bool `mapstructure:"compress" json:"compress"`
}

// DefaultConfig logs info and above to the console with secrets masked.
func DefaultConfig() Config {
	return Config{
		Level:       zerolog.InfoLevel.String(),
		Format:      FormatText,
		Output:      OutputConsole,
		Desensitize: true,
		File:        DefaultFileConfig(),
	}
}

// DefaultFileConfig writes log/avatax.log rotated daily.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Filepath:   "log",
		Filename:   "avatax",
		FileExt:    "log",
		RotateMode: writer.RotateModeTime,
		Rotatelogs: RotatelogsConfig{MaxAge: 24 * 7, RotationTime: 24},
		Lumberjack: LumberjackConfig{MaxSize: 100, MaxBackups: 5, MaxAge: 30},
	}
}

// ParseLevel accepts zerolog level names; the empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// withDefaults fills unset file fields.
func (c FileConfig) withDefaults() FileConfig {
	d := DefaultFileConfig()
	if c.Filepath == "" {
		c.Filepath = d.Filepath
	}
	if c.Filename == "" {
		c.Filename = d.Filename
	}
	if c.FileExt == "" {
		c.FileExt = d.FileExt
	}
	if c.Rotatelogs.MaxAge <= 0 {
		c.Rotatelogs.MaxAge = d.Rotatelogs.MaxAge
	}
	if c.Rotatelogs.RotationTime <= 0 {
		c.Rotatelogs.RotationTime = d.Rotatelogs.RotationTime
	}
	if c.Lumberjack.MaxSize <= 0 {
		c.Lumberjack.MaxSize = d.Lumberjack.MaxSize
	}
	return c
}

func (c FileConfig) toWriterConfig() writer.RotateConfig {
	c = c.withDefaults()
	return writer.RotateConfig{
		Filepath: c.Filepath,
		Filename: c.Filename,
		FileExt:  c.FileExt,
		Mode:     c.RotateMode,
		TimeRotateConfig: writer.TimeRotateConfig{
			MaxAge:       c.Rotatelogs.MaxAge,
			RotationTime: c.Rotatelogs.RotationTime,
		},
		SizeRotateConfig: writer.SizeRotateConfig{
			MaxSize:    c.Lumberjack.MaxSize,
			MaxBackups: c.Lumberjack.MaxBackups,
			MaxAge:     c.Lumberjack.MaxAge,
			Compress:   c.Lumberjack.Compress,
		},
	}
}
