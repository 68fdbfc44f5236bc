package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/donorbase/internal/config"
)

// NewLogger builds the server logger on stderr and installs it as the slog
// default so library code that logs through slog lands in the same stream.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := NewLoggerTo(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewLoggerTo leaves the slog default untouched. donorctl uses it so log
// records never interleave with the terminal UI.
//
// "json" is for deployments. Any other format gives text records with the
// call site, which is what a developer tailing a terminal wants.
func NewLoggerTo(w io.Writer, cfg config.LogConfig) *slog.Logger {
	json := strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     levelOf(cfg.Level),
		AddSource: !json,
	}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// levelOf accepts slog's own names, including offsets like "warn+2".
// Anything unparseable means info.
func levelOf(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
