// Package logging configures colored structured logging with tint, optionally
// mirrored to a rotating log file.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	LOG_FILE:  path of a rotating log file (default: stderr only)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	Level string
	// File, when set, receives a copy of every log line and is rotated by size.
	File string
}

// Setup installs the default slog logger and returns a closer for the log
// file (a no-op without one).
func Setup(opts Options) io.Closer {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		if !strings.HasSuffix(opts.File, ".log") {
			opts.File += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 10,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, rotating)
		closer = rotating
	}

	slog.SetDefault(slog.New(NewHandler(out, ParseLevel(opts.Level), opts.File == "")))
	return closer
}

// NewHandler returns a tint handler. Colors are turned off when the output
// is not only a terminal.
func NewHandler(w io.Writer, level slog.Level, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    !color,
	})
}

// ParseLevel maps a level name to a slog level, defaulting to info.
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
