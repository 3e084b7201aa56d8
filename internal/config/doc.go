// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package config provides configuration loading for relaybot.

Configuration is layered with koanf v2. Built-in defaults are loaded first, then
an optional YAML file, then environment variables, each layer overriding the
one before it. The merged result is validated with go-playground/validator
before it is handed to the rest of the service.

# Configuration File

The file is taken from CONFIG_PATH when set and present, otherwise the first of
config.yaml, config.yml, /etc/relaybot/config.yaml and /etc/relaybot/config.yml
that exists:

	health:
	  port: 8080
	logging:
	  level: info
	  format: text
	  targets: ["^relaybot", "^suture"]
	gateway:
	  url: wss://gateway.relaybot.dev/v1
	  ping_interval: 30s

# Environment Variables

Health listener:
  - PORT: health check listener port (default: 8080)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: text or json (default: json)
  - LOG_TARGETS: comma-separated origin regexes or "all" (default: relaybot)

Gateway:
  - GATEWAY_URL: websocket endpoint (default: wss://gateway.relaybot.dev/v1)
  - TOKEN_FILE: bot token secret path (default: /run/secrets/relaybot_token)
  - COMMAND_PREFIX: command prefix (default: ~)
  - GATEWAY_PING_INTERVAL: keepalive period (default: 30s)
  - GATEWAY_SEND_RATE: replies per second (default: 5)

Metrics and supervision:
  - METRICS_PORT: /metrics and /healthz port, 0 disables (default: 0)
  - SHUTDOWN_TIMEOUT: background shutdown grace period (default: 5s)

# Secrets

The bot token is never part of the config tree. LoadToken reads it from the
file named by TOKEN_FILE at start-up.
*/
package config
