package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RotateConfig locates the log file and picks a rotation policy.
type RotateConfig struct {
	Mode             RotateMode
	Filepath         string
	Filename         string
	FileExt          string
	TimeRotateConfig TimeRotateConfig
	SizeRotateConfig SizeRotateConfig
}

// TimeRotateConfig values are in hours.
type TimeRotateConfig struct {
	MaxAge       int
	RotationTime int
}

// SizeRotateConfig: MaxSize in megabytes, MaxAge in days.
type SizeRotateConfig struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// File creates the directory and returns a rotating writer.
func File(config RotateConfig) (io.Writer, error) {
	if config.Filename == "" {
		return nil, fmt.Errorf("log filename is required")
	}
	if config.Filepath != "" {
		if err := os.MkdirAll(config.Filepath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	switch config.Mode {
	case RotateModeTime:
		return timeRotateWriter(config)
	case RotateModeSize:
		return sizeRotateWriter(config), nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

// path joins dir, name, an optional suffix and the extension.
func (c *RotateConfig) path(suffix string) string {
	name := c.Filename
	if suffix != "" {
		name += "." + suffix
	}
	if c.FileExt != "" {
		name += "." + c.FileExt
	}
	return filepath.Join(c.Filepath, name)
}
