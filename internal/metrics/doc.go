// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package metrics provides Prometheus instrumentation for Relaybot.

All collectors are registered on the default registry through promauto and
can be exposed with Handler on METRICS_PORT (disabled by default):

	curl http://localhost:9090/metrics

# Available Metrics

Logging:
  - relaybot_log_records_total: records seen by the log router (counter)
    Labels: level, outcome (emitted, filtered)

Health listener:
  - relaybot_health_check_connections_total: accepted health check connections (counter)
  - relaybot_health_listener_up: 1 while bound (gauge)

Gateway:
  - relaybot_gateway_frames_total: received frames (counter)
    Labels: op
  - relaybot_gateway_connected: 1 while the websocket is open (gauge)
  - relaybot_commands_total: dispatched commands (counter)
    Labels: command, result
  - relaybot_command_duration_seconds: command handling latency (histogram)
    Labels: command

Supervisor:
  - relaybot_background_service_failures_total: absorbed background failures (counter)
    Labels: service

Metrics endpoint:
  - relaybot_http_requests_total: requests served (counter)
    Labels: route, code
  - relaybot_http_request_duration_seconds: request latency (histogram)
    Labels: route
*/
package metrics
