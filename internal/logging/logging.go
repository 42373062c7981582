// Package logging configures the process wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/idursun/asciidraw/internal/config"
)

// Setup installs the default logger described by cfg. The editor owns the
// terminal, so without a log file output is discarded. The returned closer
// releases the log file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(NewHandler(f, cfg.Format, level)))
	return f, nil
}

// NewHandler returns a JSON handler for format "json" and a pretty handler
// without colours otherwise.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, &opts)
	}
	return NewPrettyHandler(w, PrettyHandlerOptions{SlogOpts: opts, NoColor: true})
}

// NewConsoleHandler is used by the non interactive commands, which log to
// stderr.
func NewConsoleHandler(w io.Writer, level slog.Level) slog.Handler {
	return NewPrettyHandler(w, PrettyHandlerOptions{SlogOpts: slog.HandlerOptions{Level: level}})
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
