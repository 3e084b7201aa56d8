// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

// Package main is the entry point for the relaybot service.
//
// Relaybot keeps one websocket connection to a chat gateway open and answers
// prefixed commands on it. It is packaged for Cloud Run, which requires the
// container to accept TCP connections on $PORT, so a small health listener
// runs next to the gateway client.
//
// # Application Architecture
//
// The process starts in this order:
//
//  1. Configuration: koanf layers of defaults, config.yaml and environment
//  2. Logging: the log router is installed once as the process-wide sink
//  3. Supervisor: health listener (and metrics server, if enabled) start in
//     the background
//  4. Token: the bot token is read from TOKEN_FILE
//  5. Gateway: the client runs in the foreground until it stops
//
// The gateway client is essential. When it fails the process exits 1. The
// background services are advisory: their failures are logged and counted
// but never stop the bot.
//
// # Configuration
//
//	PORT=8080                  health listener port
//	LOG_FORMAT=json            text or json (Cloud Logging records)
//	LOG_LEVEL=info             trace, debug, info, warn, error
//	LOG_TARGETS=relaybot       comma-separated origin regexes, or "all"
//	GATEWAY_URL=wss://...      gateway endpoint
//	TOKEN_FILE=/run/secrets/relaybot_token
//	COMMAND_PREFIX=~
//	METRICS_PORT=0             0 disables /metrics and /healthz
//	SHUTDOWN_TIMEOUT=5s
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The gateway sends a normal
// close frame, background services stop within SHUTDOWN_TIMEOUT, and the
// process exits 0.
//
// # Example Usage
//
//	export TOKEN_FILE=./token.txt
//	export LOG_FORMAT=text
//	./relaybot
package main
