package logger

import (
	"io"
	"log/slog"
)

// Config controls the logger built by New
type Config struct {
	Debug bool
}

// New returns a text logger writing to w; debug enables debug level and source locations
func New(w io.Writer, cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
	}))
}

// Discard returns a logger dropping every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
