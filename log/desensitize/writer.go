package desensitize

import (
	"io"

	"github.com/kochabx/avatax/log/internal"
)

// Writer masks secrets before passing output to the wrapped writer.
type Writer struct {
	writer io.Writer
	hook   *Hook
}

// NewWriter wraps w with hook.
func NewWriter(w io.Writer, hook *Hook) *Writer {
	if w == nil {
		panic("writer cannot be nil")
	}
	if hook == nil {
		panic("hook cannot be nil")
	}
	return &Writer{writer: w, hook: hook}
}

// Write reports len(p) on success so callers do not treat masking as a short write.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.hook.RuleCount() == 0 {
		return w.writer.Write(p)
	}

	text := string(p)
	masked := w.hook.Desensitize(text)
	if masked == text {
		return w.writer.Write(p)
	}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	buf.WriteString(masked)

	if _, err := w.writer.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
