// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package supervisor owns the lifetimes of relaybot's long-running work using
suture v4.

# Overview

The process runs one essential task and a small set of advisory ones:

	Supervisor
	├── foreground Task (gateway client, runs on the caller's goroutine)
	└── suture root ("relaybot")
	    ├── HealthListener        (TCP liveness port)
	    └── HTTPServerService     (metrics, if METRICS_PORT is set)

The policy is asymmetric. The foreground task is essential: when it returns,
Run cancels the background services and returns the task's error, so the
process exits with it. Background services are advisory: a failure (error,
panic, or early return) is logged, counted in
relaybot_background_service_failures_total, and the service is left stopped.
It never interrupts the foreground task and is never restarted.

# Usage Example

	sup := supervisor.New(logging.NewSlogLogger("relaybot::supervisor"), supervisor.Config{
	    ShutdownTimeout: cfg.Supervisor.ShutdownTimeout,
	})
	sup.AddBackground(services.NewHealthListener(cfg.Health.Address()))

	err := sup.Run(ctx, client)

# Events

Suture lifecycle events are routed through sutureslog into the slog logger
passed to New, which in relaybot bridges into the zerolog log router.

# Testing

MockService provides a controllable suture.Service for tests: it can block
until cancelled, return an error, or panic.
*/
package supervisor
