// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package middleware provides the chi middleware stack for relaybot's optional
metrics endpoint.

Key Components:

  - RequestID: X-Request-ID tracking, reused as the logging correlation ID
  - PrometheusMetrics: request count and latency by route pattern and status
  - RateLimitByIP: per-client request limiting via go-chi/httprate

Middleware Stack:

The metrics server installs them outermost first:

	metrics.Handler(
	    middleware.RequestID,                       // Layer 1: request tracking
	    middleware.PrometheusMetrics,               // Layer 2: instrumentation
	    middleware.RateLimitByIP(120, time.Minute), // Layer 3: rate limiting
	)

PrometheusMetrics sits outside the rate limiter so rejected requests are
still counted (as code 429, route "unmatched").

Thread Safety:

All middleware is safe for concurrent use.
*/
package middleware
