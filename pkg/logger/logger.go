package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	formatConsole = "console"
	defaultLevel  = "info"
)

// Config controls logger output
type Config struct {
	Level  string
	Format string
}

// New creates a zerolog logger for the given service name
func New(cfg Config, service string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level, _ = zerolog.ParseLevel(defaultLevel)
	}

	var out io.Writer = os.Stderr
	if strings.ToLower(cfg.Format) == formatConsole {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// NewFromEnv creates a logger configured from LOG_LEVEL and LOG_FORMAT
func NewFromEnv(service string) zerolog.Logger {
	return New(Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}, service)
}
