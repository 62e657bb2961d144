// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup(cfg.LogLevel)   // "debug", "info", "warn" or "error"
//	logger.Info("Server starting", "addr", addr)
//
// Setup also installs the logger as the slog default, so packages that log
// through slog.Default pick up the same handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on stderr at the named level and returns
// the logger. Unknown names mean info.
func Setup(level string) *slog.Logger {
	return SetupWithWriter(os.Stderr, ParseLevel(level))
}

// SetupWithWriter configures colored logging to w at the given level.
func SetupWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  level == slog.LevelDebug,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
