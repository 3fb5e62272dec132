package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. Unknown or empty levels fall back to info.
func New(level string) *zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(out io.Writer, level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	log := zerolog.New(out).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "rental-hub").
		Logger()

	return &log
}
