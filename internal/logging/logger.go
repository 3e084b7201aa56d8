// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrSinkInstalled is returned by Install when a Router is already the
// process-wide sink.
var ErrSinkInstalled = errors.New("logging: sink already installed")

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string

	// Format is the output format: text, or json/structured.
	// Default: json. Unrecognized values warn and use json.
	Format string

	// Targets are origin regexes allowed through the router. "all" disables
	// filtering. Default: [Namespace]
	Targets []string

	// Output is the writer for rendered log lines.
	// Default: os.Stdout
	Output io.Writer

	// Diagnostics receives configuration warnings raised before the router
	// exists (bad patterns, unknown format).
	// Default: os.Stderr
	Diagnostics io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		Targets:     []string{Namespace},
		Output:      os.Stdout,
		Diagnostics: os.Stderr,
	}
}

var (
	// log is the global logger instance.
	log zerolog.Logger

	// mu protects log.
	mu sync.RWMutex

	// installed is the process-wide Router, set at most once.
	installed atomic.Pointer[Router]
)

//nolint:gochecknoinits // init ensures logging works before Setup is called
func init() {
	// Until a Router is installed, events go to stderr as plain zerolog JSON
	// so start-up failures are never lost.
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Setup builds the TargetFilter, Format and Router described by cfg and
// installs the Router as the process-wide sink. It must be called once,
// early in main.
func Setup(cfg Config) (*Router, error) {
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = os.Stderr
	}

	router := NewRouter(RouterConfig{
		Filter: NewTargetFilter(cfg.Targets, cfg.Diagnostics),
		Format: ParseFormat(cfg.Format, cfg.Diagnostics),
		Output: cfg.Output,
	})
	if err := Install(router, parseLevel(cfg.Level)); err != nil {
		return nil, err
	}
	return router, nil
}

// Install makes router the process-wide log sink at the given minimum
// level. It succeeds at most once per process; every later call returns
// ErrSinkInstalled and leaves the installed Router in place.
func Install(router *Router, level zerolog.Level) error {
	if router == nil {
		return errors.New("logging: nil router")
	}
	if !installed.CompareAndSwap(nil, router) {
		return ErrSinkInstalled
	}

	zerolog.SetGlobalLevel(level)
	SetLogger(newRoutedLogger(router, router.namespace))
	return nil
}

// newRoutedLogger returns a logger writing to router for records from
// origin. The filter is consulted once, here: a rejected origin gets a
// disabled logger, so neither the event nor the source-location walk is
// ever built for it.
func newRoutedLogger(router *Router, origin string) zerolog.Logger {
	l := zerolog.New(router)
	if !router.Allows(origin) {
		return l.Level(zerolog.Disabled)
	}
	return l.Hook(sourceHook{})
}

// Installed returns the process-wide Router, or nil before Install.
func Installed() *Router {
	return installed.Load()
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger instance.
// This is useful for testing or specialized configurations.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// For returns a logger whose records carry the given origin. When a Router
// is installed and rejects the origin, the logger is disabled outright so
// call sites on hot paths pay nothing for filtered records. The global
// helpers (Info, Error, Err) log under the namespace origin and follow the
// same rule.
//
//	gwLog := logging.For("relaybot::gateway")
//	gwLog.Info().Str("op", op).Msg("Frame received")
func For(origin string) zerolog.Logger {
	if r := installed.Load(); r != nil {
		return newRoutedLogger(r, origin).With().Str(OriginField, origin).Logger()
	}
	return With().Str(OriginField, origin).Logger()
}

// With creates a child logger with additional context.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// Info starts a new message with info level.
//
//	logging.Info().Msg("Gateway connected")
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Error starts a new message with error level.
//
//	logging.Error().Err(err).Msg("Reply failed")
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Err starts a new message with error level and adds the error.
func Err(err error) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Err(err)
}
