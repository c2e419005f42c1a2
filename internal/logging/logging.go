// Package logging configures structured application logging.
//
// The terminal belongs to the TUI, so log output goes to a file under the
// configured log directory rather than stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config captures options for building the application logger.
type Config struct {
	Level   string    // "debug", "info", ...; empty or invalid means info
	Output  io.Writer // defaults to io.Discard
	Session string    // per-run identifier; empty generates one
}

// New builds a zerolog logger carrying service and session fields.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = io.Discard
	}

	session := cfg.Session
	if session == "" {
		session = NewSessionID()
	}

	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", "decksim").
		Str("session", session).
		Logger()
}

// WithComponent returns a child logger annotated with the component name.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// NewSessionID returns a random identifier for one run of the program.
func NewSessionID() string {
	return uuid.NewString()
}

// OpenFile opens path for appending, creating parent directories as needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
