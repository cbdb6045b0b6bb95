/*
package logging builds the structured loggers used by the command line
tools. Levels can be parsed from configuration files and flags.
*/
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is a minimum severity for log output.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a case-insensitive level name. "warning" is accepted as
// an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level '%s'", s)
}

// MarshalText lets Levels be written to config files by name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText lets Levels be read from config files by name.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Config controls the format and verbosity of a logger.
type Config struct {
	Level Level `yaml:"level"`
	JSON  bool  `yaml:"json"`
	Quiet bool  `yaml:"quiet"`
	// Service is attached to every record when non-empty.
	Service string `yaml:"service,omitempty"`
}

// DefaultConfig logs text at LevelInfo.
func DefaultConfig() Config {
	return Config{Level: LevelInfo}
}

// New returns a logger writing to w. A quiet logger discards everything.
func New(cfg Config, w io.Writer) *slog.Logger {
	if cfg.Quiet || w == nil {
		return slog.New(discardHandler)
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel()}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	log := slog.New(h)
	if cfg.Service != "" {
		log = log.With("service", cfg.Service)
	}
	return log
}
