// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/relaybot/internal/config"
	"github.com/tomtom215/relaybot/internal/gateway"
	"github.com/tomtom215/relaybot/internal/logging"
	"github.com/tomtom215/relaybot/internal/supervisor"
	"github.com/tomtom215/relaybot/internal/supervisor/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// The default stderr logger is still active here
		logging.Err(err).Msg("Failed to load configuration")
		return 1
	}

	if _, err := logging.Setup(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Targets: cfg.Logging.Targets,
		Output:  os.Stdout,
	}); err != nil {
		logging.Err(err).Msg("Failed to install log router")
		return 1
	}

	logging.Info().
		Str("health_addr", cfg.Health.Address()).
		Str("gateway_url", cfg.Gateway.URL).
		Str("format", cfg.Logging.Format).
		Strs("targets", cfg.Logging.Targets).
		Msg("Starting relaybot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(logging.NewSlogLogger("relaybot::supervisor"), supervisor.Config{
		ShutdownTimeout: cfg.Supervisor.ShutdownTimeout,
	})
	sup.AddBackground(services.NewHealthListener(cfg.Health.Address()))
	if cfg.Metrics.Enabled() {
		sup.AddBackground(services.NewMetricsServerService(
			cfg.Metrics.Address(),
			cfg.Metrics.RateLimit,
			cfg.Supervisor.ShutdownTimeout,
		))
		logging.Info().Str("addr", cfg.Metrics.Address()).Msg("Metrics endpoint enabled")
	}

	// The background services start before the foreground task runs, so the
	// health port is already bound while the token is read.
	err = sup.Run(ctx, botTask{cfg: cfg.Gateway})

	code := exitCode(err)
	switch {
	case code != 0:
		logging.Error().Err(err).Msg("Gateway client failed")
	case err != nil:
		logging.Info().Msg("Shutdown signal received, stopped cleanly")
	default:
		logging.Info().Msg("Gateway closed, shutting down")
	}
	return code
}

// exitCode maps the foreground result to the process exit status. A nil
// result (normal gateway close) and cancellation (SIGINT/SIGTERM) are clean.
func exitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}

// botTask is the essential foreground task: it reads the bot token and runs
// the gateway client until the connection ends.
type botTask struct {
	cfg config.GatewayConfig
}

// Run implements supervisor.Task.
func (b botTask) Run(ctx context.Context) error {
	token, err := config.LoadToken(b.cfg.TokenFile)
	if err != nil {
		return fmt.Errorf("load bot token: %w", err)
	}

	client := gateway.NewClient(gateway.Config{
		URL:          b.cfg.URL,
		Token:        token,
		Commands:     gateway.NewCommands(b.cfg.CommandPrefix),
		PingInterval: b.cfg.PingInterval,
		SendRate:     b.cfg.SendRate,
	})
	return client.Run(ctx)
}

// String names the task in errors and supervisor events.
func (botTask) String() string {
	return "gateway"
}
