package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sternenweber/bookdesk/internal/config"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger opens the log file and installs a text logger as the slog
// default. The screen owns the terminal, so nothing is logged to stdout; if
// the file cannot be opened logging is discarded.
func setupLogger(lc config.LogConfig) (*slog.Logger, func() error) {
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }

	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
			warn("Could not create log directory: %v", err)
		} else if f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			warn("Could not open log file: %v", err)
		} else {
			w = f
			closeFn = f.Close
		}
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(lc.Level)}))
	slog.SetDefault(log)
	return log, closeFn
}
