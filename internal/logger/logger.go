// Package logger provides the leveled, structured logger used across taskdeck.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is the logging surface every component depends on.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Logger
}

// Level controls which messages are emitted.
type Level int

const (
	// LevelSilent suppresses everything but errors.
	LevelSilent Level = iota
	// LevelNormal shows warnings and errors.
	LevelNormal
	// LevelDebug adds info messages.
	LevelDebug
	// LevelVerbose shows everything.
	LevelVerbose
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelSilent:
		return slog.LevelError
	case LevelDebug:
		return slog.LevelInfo
	case LevelVerbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s *slogLogger) Info(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s *slogLogger) Warn(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s *slogLogger) Error(msg string, kv ...any) { s.l.Error(msg, kv...) }

func (s *slogLogger) With(kv ...any) Logger {
	return &slogLogger{l: s.l.With(kv...)}
}

// New builds a text logger writing to w at the given level.
func New(w io.Writer, level Level) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &slogLogger{l: slog.New(h)}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &slogLogger{l: slog.New(discardHandler{})}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

var (
	mu      sync.RWMutex
	current = New(os.Stderr, LevelNormal)
)

// SetLevel replaces the process logger with one at the given level.
func SetLevel(level Level) {
	SetOutput(os.Stderr, level)
}

// SetOutput replaces the process logger.
func SetOutput(w io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()
	current = New(w, level)
}

// Default returns the process logger.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debug(msg string, kv ...any) { Default().Debug(msg, kv...) }
func Info(msg string, kv ...any)  { Default().Info(msg, kv...) }
func Warn(msg string, kv ...any)  { Default().Warn(msg, kv...) }
func Error(msg string, kv ...any) { Default().Error(msg, kv...) }

// WithField returns the process logger with one extra attribute.
func WithField(key string, value any) Logger {
	return Default().With(key, value)
}
