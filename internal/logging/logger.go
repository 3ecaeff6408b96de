package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to w.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "console" (defaults to "console")
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a disabled logger
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
