package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dailyspark/vocab-backend/internal/config"
)

// NewLogger builds the process logger from cfg, writes to stderr and
// installs it as the slog default. Every record carries the component
// name so server, worker and CLI lines can be told apart.
func NewLogger(cfg config.LogConfig, component string) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(
		slog.String("app", "vocab-backend"),
		slog.String("component", component),
	)
	slog.SetDefault(logger)
	return logger
}

// newLogger picks the JSON handler for "json" and the text handler with
// source locations otherwise.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
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
