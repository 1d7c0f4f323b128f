// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/findcoffee/findcoffee/pkg/config"
)

// LogFileName is the name of the log file in the log directory.
const LogFileName = "findcoffee.log"

// Init sets the default slog logger and returns it.
// The log file is created in logDir if destination is "file". If append
// is true, new records are added to the existing file; otherwise the file
// starts fresh.
func Init(
	logDir string,
	cfg config.LogConfig,
	append bool,
) (*slog.Logger, error) {
	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return nil, err
	}

	res := slog.New(handler(w, cfg))
	slog.SetDefault(res)
	return res, nil
}

func writer(logDir, destination string, append bool) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, nil
	case "file":
		logPath := filepath.Join(logDir, LogFileName)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

func handler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	switch cfg.Format {
	case "text", "tint":
		// tint is a text log meant for a terminal
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
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
