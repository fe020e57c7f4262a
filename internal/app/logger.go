package app

import (
	"io"
	"log/slog"
)

// newLogger builds the App's private logger; the process-wide default is
// never touched. slog's own level parser handles the level name; an
// unrecognized one degrades to info rather than failing a run that is
// otherwise fine (the CLI rejects bad names up front, library callers
// may pass anything).
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
