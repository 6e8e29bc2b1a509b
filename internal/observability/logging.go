// Package observability builds the structured logger shared by drivers.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogConfig holds configuration for the structured logger.
type LogConfig struct {
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" or "text"
	File    string // empty writes to Output
	AppName string
	Output  io.Writer // defaults to os.Stderr
}

// NewLogger creates a logger and sets it as the slog default. The returned
// close function releases the log file, if any.
func NewLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	closeFn := func() error { return nil }

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writer = file
		closeFn = file.Close
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler)
	if cfg.AppName != "" {
		logger = logger.With(slog.String("app", cfg.AppName))
	}
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
