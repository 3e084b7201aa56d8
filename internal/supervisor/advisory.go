// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/relaybot/internal/metrics"
)

// errExitedEarly marks a background service that returned nil while the
// supervisor was still running.
var errExitedEarly = errors.New("service exited before shutdown")

// advisory runs a background service at most once. Any failure, including a
// panic or an early clean return, is logged and counted and then reported to
// suture as ErrDoNotRestart so the service stays down without affecting
// anything else.
type advisory struct {
	svc    suture.Service
	name   string
	logger *slog.Logger
}

func newAdvisory(svc suture.Service, logger *slog.Logger) *advisory {
	return &advisory{
		svc:    svc,
		name:   serviceName(svc),
		logger: logger,
	}
}

// Serve implements suture.Service.
func (a *advisory) Serve(ctx context.Context) error {
	err := a.serve(ctx)

	// Shutting down: suture drops the service regardless of what we return.
	if ctx.Err() != nil {
		return err
	}

	if err == nil {
		err = errExitedEarly
	}
	metrics.BackgroundServiceFailures.WithLabelValues(a.name).Inc()
	a.logger.Error("background service failed; continuing without it",
		"service", a.name,
		"error", err.Error())

	return fmt.Errorf("%s: %w", a.name, errors.Join(err, suture.ErrDoNotRestart))
}

func (a *advisory) serve(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return a.svc.Serve(ctx)
}

// String implements fmt.Stringer so suture events name the wrapped service.
func (a *advisory) String() string {
	return a.name
}
