// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// Task is the essential foreground workload. Run blocks until the task ends;
// its return value becomes the result of Supervisor.Run.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(ctx context.Context) error

// Run implements Task.
func (f TaskFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Config holds supervisor configuration.
type Config struct {
	// ShutdownTimeout bounds how long Run waits for background services to
	// stop after the foreground task has returned.
	// Default: 5s
	ShutdownTimeout time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ShutdownTimeout: 5 * time.Second,
	}
}

// Supervisor owns one essential foreground task and any number of advisory
// background services.
//
// Background services run under a suture supervisor. A background failure is
// logged and counted and the service is left stopped; it never reaches the
// foreground task. When the foreground task returns, for any reason, the
// background services are cancelled and its result is returned to the caller.
type Supervisor struct {
	root   *suture.Supervisor
	logger *slog.Logger
	config Config
}

// New creates a supervisor that reports lifecycle events to logger.
func New(logger *slog.Logger, config Config) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	// MustHook has a pointer receiver, so we need to take the address.
	handler := &sutureslog.Handler{Logger: logger}

	root := suture.New("relaybot", suture.Spec{
		EventHook: handler.MustHook(),
		Timeout:   config.ShutdownTimeout,
	})

	return &Supervisor{
		root:   root,
		logger: logger,
		config: config,
	}
}

// AddBackground registers an advisory service. Services added before Run
// start when Run does; services added later start immediately.
func (s *Supervisor) AddBackground(svc suture.Service) suture.ServiceToken {
	return s.root.Add(newAdvisory(svc, s.logger))
}

// Run starts the background services, then runs task on the calling
// goroutine. When task returns, the background services are cancelled and
// given up to ShutdownTimeout to stop. The task's error is returned wrapped
// with the task's name; a nil task result yields nil regardless of how the
// background services fared.
func (s *Supervisor) Run(ctx context.Context, task Task) error {
	bgCtx, cancelBackground := context.WithCancel(ctx)
	defer cancelBackground()

	done := s.root.ServeBackground(bgCtx)

	err := task.Run(ctx)

	cancelBackground()
	s.awaitBackground(done)

	if err != nil {
		return fmt.Errorf("%s: %w", serviceName(task), err)
	}
	return nil
}

func (s *Supervisor) awaitBackground(done <-chan error) {
	timer := time.NewTimer(s.config.ShutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.logger.Warn("background services did not stop in time",
			"timeout", s.config.ShutdownTimeout)
	}
}

func serviceName(v any) string {
	if named, ok := v.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", v)
}
