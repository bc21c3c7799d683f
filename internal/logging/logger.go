// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic or disabled. Unknown values fall back to info.
	Level string

	// Format is json (one object per line, for log shippers) or console
	// (colored, for interactive runs).
	Format string

	// Caller adds the file:line of the log call site.
	Caller bool

	// Timestamp adds an RFC 3339 "time" field to every event.
	Timestamp bool

	// Output receives the encoded events. Nil means os.Stderr, which keeps
	// stdout free for command results.
	Output io.Writer
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

//nolint:gochecknoinits // packages may log before cmd/draftset calls Init
func init() {
	base = build(DefaultConfig())
}

// Init replaces the process logger and the global level.
//
// Loggers obtained from WithComponent before Init keep writing to the old
// output, so Init belongs at the top of a command, before any pipeline
// component is constructed.
func Init(cfg Config) {
	l := build(cfg)

	mu.Lock()
	defer mu.Unlock()
	base = l
}

func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
	}

	// The run hook travels with every child logger, so component loggers
	// created once per writer still pick up the run that is active when
	// they emit.
	c := zerolog.New(out).Hook(runHook{}).With()
	if cfg.Timestamp {
		c = c.Timestamp()
	}
	if cfg.Caller {
		c = c.Caller()
	}
	return c.Logger()
}

// parseLevel maps a configured level name to a zerolog level.
func parseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger tagged with the emitting package.
//
//	logger := logging.WithComponent("shard")
//	logger.Debug().Str("shard", "0003.json").Msg("Shard closed")
//	// {"level":"debug","component":"shard","shard":"0003.json","run_id":"...","message":"Shard closed"}
func WithComponent(component string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", component).Logger()
}

// Info starts an info event on the process logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Error starts an error event on the process logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}
