// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package services provides the suture.Service implementations relaybot runs in
the background.

# Available Services

Health Listener (HealthListener):
  - Binds the liveness port (0.0.0.0:$PORT)
  - Accepts and immediately closes every connection
  - Bind failure is returned at once; the supervisor logs it and moves on

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - NewMetricsServerService serves /metrics and /healthz when METRICS_PORT is set

Every service returns ctx.Err() after a clean, cancellation-driven stop and a
descriptive error otherwise, and implements fmt.Stringer so supervisor events
name it.
*/
package services
