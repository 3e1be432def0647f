// Package log sets up the slog logger shared by the corkboard programs.
//
// Console output goes to stderr as text or JSON. When a file is configured,
// records are also written there as JSON through a rotating lumberjack
// writer.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "CORKBOARD_LOG_LEVEL"
	EnvFormat = "CORKBOARD_LOG_FORMAT"
	EnvSource = "CORKBOARD_LOG_SOURCE"
	EnvFile   = "CORKBOARD_LOG_FILE"
)

// Options controls Init. Zero values mean info level, text format, no
// source, no file.
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // text or json
	AddSource bool
	File      string
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	rotator *lumberjack.Logger
	stderr  io.Writer = os.Stderr
)

// Init builds the process logger from opts and installs it as slog.Default.
// A previously opened log file is closed.
func Init(opts Options) *slog.Logger {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level), AddSource: opts.AddSource}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(stderr, ho)
	} else {
		console = slog.NewTextHandler(stderr, ho)
	}
	h := console

	var rot *lumberjack.Logger
	if f := strings.TrimSpace(opts.File); f != "" {
		rot = &lumberjack.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
		h = fanout{console, slog.NewJSONHandler(rot, ho)}
	}

	l := slog.New(h).With(slog.String("app", "corkboard"))

	mu.Lock()
	old := rotator
	current, rotator = l, rot
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	slog.SetDefault(l)
	return l
}

// L returns the process logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// WithComponent returns L annotated with a component name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	rot := rotator
	rotator = nil
	mu.Unlock()
	if rot == nil {
		return nil
	}
	return rot.Close()
}

// FromEnv reads Options from the CORKBOARD_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     os.Getenv(EnvLevel),
		Format:    os.Getenv(EnvFormat),
		AddSource: parseBool(os.Getenv(EnvSource)),
		File:      os.Getenv(EnvFile),
	}
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
