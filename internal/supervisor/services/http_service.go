// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/relaybot/internal/logging"
	"github.com/tomtom215/relaybot/internal/metrics"
	"github.com/tomtom215/relaybot/internal/middleware"
)

// HTTPServer interface matches *http.Server lifecycle methods so tests can
// substitute a fake.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server as a supervised service.
//
// ListenAndServe runs in its own goroutine; Serve waits for either a server
// failure or context cancellation and, on cancellation, shuts the server
// down within shutdownTimeout.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps server under the given service name.
// A non-positive shutdownTimeout defaults to 5s.
func NewHTTPServerService(name string, server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	if name == "" {
		name = "http-server"
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            name,
	}
}

// NewMetricsServerService serves the Prometheus /metrics and /healthz
// endpoints on address. Each request gets a request ID and is counted, and
// each client IP is limited to rateLimit requests per minute (0 disables).
func NewMetricsServerService(address string, rateLimit int, shutdownTimeout time.Duration) *HTTPServerService {
	handler := metrics.Handler(
		middleware.RequestID,
		middleware.PrometheusMetrics,
		middleware.RateLimitByIP(rateLimit, time.Minute),
	)
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return NewHTTPServerService("metrics-server", server, shutdownTimeout)
}

// Serve implements suture.Service.
//
// Returns ctx.Err() after a clean shutdown, or an error if the server fails
// to start, stops on its own, or fails to shut down.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	logger := logging.For("relaybot::" + h.name)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.server.ListenAndServe()
	}()
	logger.Info().Msg("http server started")

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s stopped unexpectedly", h.name)
		}
		return fmt.Errorf("%s failed: %w", h.name, err)

	case <-ctx.Done():
		// The original context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s shutdown failed: %w", h.name, err)
		}

		<-errCh
		logger.Debug().Msg("http server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer.
// Suture uses this to identify the service in log messages.
func (h *HTTPServerService) String() string {
	return h.name
}
