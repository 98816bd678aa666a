// Package log provides the prefixed, colored, leveled logger used across the
// service.
package log

import (
	"errors"
	"io"
	stdlog "log"

	"github.com/beka-birhanu/vinom-maze/config"
)

var ErrNilWriter = errors.New("logger writer is nil")

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
type Logger struct {
	prefix string
	color  string
	out    *stdlog.Logger
}

// New creates a logger tagging every line with prefix in the given color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    stdlog.New(w, "", stdlog.LstdFlags),
	}, nil
}

func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(levelColor, level, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.LogColorReset,
		levelColor, level, config.LogColorReset,
		msg)
}
