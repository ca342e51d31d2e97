// Package logging provides structured logging for taskreflect runs.
// It wraps Go's log/slog package to provide JSON-formatted logs with
// context propagation support for debugging watch sessions after the fact.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels supported by the logger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger wraps slog.Logger with taskreflect-specific context helpers.
type Logger struct {
	logger *slog.Logger
	writer *RotatingWriter
	attrs  []slog.Attr
}

// NewLogger creates a logger that writes JSON logs to
// {logDir}/taskreflect.log, rotating the file per the rotation config.
// If logDir is empty, logs go to stderr and rotation is disabled.
func NewLogger(logDir, level string, rotation RotationConfig) (*Logger, error) {
	var out io.Writer = os.Stderr
	var writer *RotatingWriter

	if logDir != "" {
		logPath := filepath.Join(logDir, "taskreflect.log")
		w, err := NewRotatingWriter(logPath, rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = w
		out = w
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return &Logger{
		logger: slog.New(handler),
		writer: writer,
		attrs:  make([]slog.Attr, 0),
	}, nil
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a logger with the component name attached to
// all entries (e.g. "watch", "sequencer", "tui").
func (l *Logger) WithComponent(name string) *Logger {
	return l.withAttr(slog.String("component", name))
}

// WithTasksFile returns a logger with the tasks file path attached.
func (l *Logger) WithTasksFile(path string) *Logger {
	return l.withAttr(slog.String("tasks_file", path))
}

// WithStrategy returns a logger with the dispatch strategy attached.
func (l *Logger) WithStrategy(strategy string) *Logger {
	return l.withAttr(slog.String("strategy", strategy))
}

// With returns a logger with additional key-value pairs attached.
func (l *Logger) With(args ...any) *Logger {
	newLogger := &Logger{
		logger: l.logger.With(args...),
		writer: l.writer,
		attrs:  l.attrs,
	}
	return newLogger
}

// withAttr returns a new logger with an additional attribute.
func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr

	return &Logger{
		logger: l.logger,
		writer: l.writer,
		attrs:  newAttrs,
	}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

// log emits a log entry with the accumulated context attributes.
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)

	l.logger.Log(nil, level, msg, allArgs...)
}

// Close flushes and closes the underlying log file if one is open.
func (l *Logger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}

// NopLogger returns a logger that discards all output. Useful for tests
// and for commands that run with logging disabled.
func NopLogger() *Logger {
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	})
	return &Logger{
		logger: slog.New(handler),
		attrs:  make([]slog.Attr, 0),
	}
}

// ParseLevel normalizes a log level string. Unknown levels fall back
// to INFO.
func ParseLevel(level string) string {
	normalized := strings.ToUpper(strings.TrimSpace(level))
	switch normalized {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return normalized
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
