// Package logging builds the slog loggers used by the binaries.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a JSON logger at the given level carrying module and version.
// Source locations are added at debug level only.
func New(w io.Writer, module, version, level string) *slog.Logger {
	lev := ParseLevel(level)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("module", module, "version", version)
}

// NewText returns a human-readable logger for command-line use.
func NewText(w io.Writer, verbose bool) *slog.Logger {
	lev := slog.LevelWarn
	if verbose {
		lev = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lev}))
}

// ParseLevel converts a level name into a slog.Level. Unrecognized names
// give slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
