// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds the complete service configuration.
type Config struct {
	Health     HealthConfig     `koanf:"health"`
	Logging    LoggingConfig    `koanf:"logging"`
	Gateway    GatewayConfig    `koanf:"gateway"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// HealthConfig describes the liveness listener the hosting platform connects to.
//
// Environment Variables:
//   - PORT: TCP port to accept health check connections on (default: 8080)
type HealthConfig struct {
	Port int `koanf:"port" validate:"min=1,max=65535"`
}

// Address returns the wildcard bind address for the listener.
func (h HealthConfig) Address() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(h.Port))
}

// LoggingConfig holds logging settings for the log router.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: text, json, structured (default: json)
//   - LOG_TARGETS: comma-separated origin regexes, or "all" (default: relaybot)
//
// Format and Targets are deliberately not validated here: an unknown format
// falls back to JSON and a bad regex is skipped, both with a warning on stderr.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is the output format: text or json.
	// Default: json
	Format string `koanf:"format"`

	// Targets lists the origin patterns whose records are emitted.
	// Default: [relaybot]
	Targets []string `koanf:"targets"`
}

// GatewayConfig configures the real-time gateway connection.
//
// Environment Variables:
//   - GATEWAY_URL: websocket endpoint (default: wss://gateway.relaybot.dev/v1)
//   - TOKEN_FILE: path to the bot token secret (default: /run/secrets/relaybot_token)
//   - COMMAND_PREFIX: leading text that marks a command (default: ~)
//   - GATEWAY_PING_INTERVAL: websocket keepalive period (default: 30s)
//   - GATEWAY_SEND_RATE: maximum replies per second (default: 5)
type GatewayConfig struct {
	URL           string        `koanf:"url" validate:"required,wsurl"`
	TokenFile     string        `koanf:"token_file" validate:"required"`
	CommandPrefix string        `koanf:"command_prefix" validate:"required"`
	PingInterval  time.Duration `koanf:"ping_interval" validate:"gte=1s"`
	SendRate      float64       `koanf:"send_rate" validate:"gt=0"`
}

// MetricsConfig controls the optional Prometheus endpoint.
//
// Environment Variables:
//   - METRICS_PORT: port for /metrics and /healthz; 0 disables (default: 0)
//   - METRICS_RATE_LIMIT: requests per minute per client IP; 0 disables (default: 120)
type MetricsConfig struct {
	Port      int `koanf:"port" validate:"min=0,max=65535"`
	RateLimit int `koanf:"rate_limit" validate:"gte=0"`
}

// Enabled reports whether the metrics server should run.
func (m MetricsConfig) Enabled() bool {
	return m.Port > 0
}

// Address returns the bind address for the metrics server.
func (m MetricsConfig) Address() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(m.Port))
}

// SupervisorConfig tunes shutdown of the service tree.
//
// Environment Variables:
//   - SHUTDOWN_TIMEOUT: how long background services get to stop (default: 5s)
type SupervisorConfig struct {
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}
