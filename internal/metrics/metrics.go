// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Log record outcomes.
const (
	OutcomeEmitted  = "emitted"
	OutcomeFiltered = "filtered"
)

var (
	// Logging Metrics
	LogRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_log_records_total",
			Help: "Log records seen by the router, by level and outcome",
		},
		[]string{"level", "outcome"}, // outcome: "emitted", "filtered"
	)

	// Health Listener Metrics
	HealthCheckConnections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relaybot_health_check_connections_total",
			Help: "TCP connections accepted (and dropped) by the health listener",
		},
	)

	HealthListenerUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_health_listener_up",
			Help: "1 while the health listener is bound and accepting",
		},
	)

	// Gateway Metrics
	GatewayFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_gateway_frames_total",
			Help: "Frames received from the real-time gateway, by op",
		},
		[]string{"op"},
	)

	GatewayConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_gateway_connected",
			Help: "1 while the gateway websocket is open",
		},
	)

	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_commands_total",
			Help: "Commands dispatched, by command and result",
		},
		[]string{"command", "result"}, // result: "ok", "error"
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaybot_command_duration_seconds",
			Help:    "Time from command receipt to reply sent",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	// Supervisor Metrics
	BackgroundServiceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_background_service_failures_total",
			Help: "Background service failures absorbed by the supervisor",
		},
		[]string{"service"},
	)

	// Metrics Endpoint Metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_http_requests_total",
			Help: "Requests served by the metrics endpoint, by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaybot_http_request_duration_seconds",
			Help:    "Metrics endpoint request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// RecordCommand records the outcome and latency of a dispatched command.
func RecordCommand(command string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CommandsHandled.WithLabelValues(command, result).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordGatewayFrame counts a received gateway frame.
func RecordGatewayFrame(op string) {
	if op == "" {
		op = "unknown"
	}
	GatewayFrames.WithLabelValues(op).Inc()
}

// SetGatewayConnected updates the gateway connection gauge.
func SetGatewayConnected(connected bool) {
	if connected {
		GatewayConnected.Set(1)
		return
	}
	GatewayConnected.Set(0)
}

// SetHealthListenerUp updates the health listener gauge.
func SetHealthListenerUp(up bool) {
	if up {
		HealthListenerUp.Set(1)
		return
	}
	HealthListenerUp.Set(0)
}

// RecordHTTPRequest records a request served by the metrics endpoint.
func RecordHTTPRequest(route, code string, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, code).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
