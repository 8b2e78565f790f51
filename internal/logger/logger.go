package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
)

func ParseLevel(lvl string) (Level, error) {
	switch strings.ToLower(lvl) {
	case "error":
		return ERROR, nil
	case "warn":
		return WARN, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	}
	return INFO, fmt.Errorf("invalid log level: %s", lvl)
}

func (l Level) toZerolog() zerolog.Level {
	switch l {
	case ERROR:
		return zerolog.ErrorLevel
	case WARN:
		return zerolog.WarnLevel
	case DEBUG:
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Logger is a leveled logger backed by zerolog.
type Logger struct {
	level Level
	zl    zerolog.Logger
}

// New creates a Logger writing human-readable lines to stderr.
func New(level Level) *Logger {
	return NewWithWriter(level, "console", os.Stderr)
}

// NewWithWriter creates a Logger writing to w. format is "json" for one
// JSON object per line, anything else for console output.
func NewWithWriter(level Level, format string, w io.Writer) *Logger {
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return &Logger{
		level: level,
		zl:    zerolog.New(out).Level(level.toZerolog()).With().Timestamp().Logger(),
	}
}

// Level returns the configured level.
func (l *Logger) Level() Level {
	return l.level
}

// Zerolog exposes the underlying logger for structured fields.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Errorf prints a formatted error message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Warnf prints a formatted warning message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Infof prints a formatted info message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Debugf prints a formatted debug message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}
