// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package services

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/tomtom215/relaybot/internal/logging"
	"github.com/tomtom215/relaybot/internal/metrics"
)

// HealthListener accepts TCP connections on the liveness port and closes
// them at once. The platform health check only needs the handshake to succeed, so
// no bytes are read or written.
type HealthListener struct {
	address string

	readyOnce sync.Once
	ready     chan struct{}

	mu   sync.Mutex
	addr net.Addr
}

// NewHealthListener creates a listener for address, e.g. "0.0.0.0:8080".
func NewHealthListener(address string) *HealthListener {
	return &HealthListener{
		address: address,
		ready:   make(chan struct{}),
	}
}

// Serve implements suture.Service.
//
// A bind failure is returned immediately. Once bound, Serve accepts until
// the context is cancelled, returning ctx.Err(), or until Accept fails,
// returning that error.
func (h *HealthListener) Serve(ctx context.Context) error {
	logger := logging.For("relaybot::health")

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.address)
	if err != nil {
		return fmt.Errorf("health listener bind %s: %w", h.address, err)
	}
	defer ln.Close()

	// Accept does not take a context; closing the listener unblocks it.
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	metrics.SetHealthListenerUp(true)
	defer metrics.SetHealthListenerUp(false)

	h.mu.Lock()
	h.addr = ln.Addr()
	h.mu.Unlock()
	h.readyOnce.Do(func() { close(h.ready) })

	logger.Info().Str("address", ln.Addr().String()).Msg("health listener bound")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("health listener accept: %w", err)
		}
		metrics.HealthCheckConnections.Inc()
		_ = conn.Close()
	}
}

// Ready is closed once the listener is bound.
func (h *HealthListener) Ready() <-chan struct{} {
	return h.ready
}

// Addr returns the bound address, or nil before Ready is closed.
func (h *HealthListener) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}

// String implements fmt.Stringer.
func (h *HealthListener) String() string {
	return "health-listener"
}
