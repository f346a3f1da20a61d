package utils

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger. Level falls back to info on an
// unknown name; format "text" gets the human console writer, anything else
// emits JSON lines.
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "text" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.With().Timestamp().Logger().Level(lvl)
}
