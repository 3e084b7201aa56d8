// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != Namespace {
		t.Errorf("expected default targets [%s], got %v", Namespace, cfg.Targets)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// TestSetupInstallsOnce is the only test that installs the process-wide
// sink; everything it asserts depends on that single installation.
func TestSetupInstallsOnce(t *testing.T) {
	var out, diag bytes.Buffer

	router, err := Setup(Config{
		Level:       "debug",
		Format:      "text",
		Targets:     []string{"^relaybot", "(broken"},
		Output:      &out,
		Diagnostics: &diag,
	})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if Installed() != router {
		t.Fatal("Installed() does not return the router from Setup")
	}
	if router.Format() != FormatText {
		t.Errorf("Format() = %v, want text", router.Format())
	}
	if !strings.Contains(diag.String(), "target regex '(broken' failed to compile") {
		t.Errorf("missing compile diagnostic: %q", diag.String())
	}

	t.Run("second install is rejected", func(t *testing.T) {
		other := NewRouter(RouterConfig{Output: &bytes.Buffer{}})
		if err := Install(other, zerolog.InfoLevel); !errors.Is(err, ErrSinkInstalled) {
			t.Errorf("Install() error = %v, want ErrSinkInstalled", err)
		}
		if _, err := Setup(DefaultConfig()); !errors.Is(err, ErrSinkInstalled) {
			t.Errorf("Setup() error = %v, want ErrSinkInstalled", err)
		}
		if Installed() != router {
			t.Error("first router was replaced")
		}
	})

	t.Run("allowed origin is emitted", func(t *testing.T) {
		out.Reset()
		gw := For("relaybot::gateway")
		gw.Info().Msg("connected")
		if got := out.String(); got != "INFO :relaybot::gateway - connected\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("rejected origin is disabled", func(t *testing.T) {
		out.Reset()
		l := For("otherlib::io")
		if l.GetLevel() != zerolog.Disabled {
			t.Errorf("GetLevel() = %v, want disabled", l.GetLevel())
		}
		l.Error().Msg("noise")
		if out.Len() != 0 {
			t.Errorf("rejected origin produced output: %q", out.String())
		}
	})

	t.Run("slog handler follows the origin filter", func(t *testing.T) {
		out.Reset()
		if NewSlogHandler("otherlib::io").Enabled(context.Background(), slog.LevelError) {
			t.Error("handler for rejected origin reports enabled")
		}
		NewSlogLogger("otherlib::io").Error("noise")
		NewSlogLogger("relaybot::supervisor").With("service", "gateway").Info("started")
		if got := out.String(); got != "INFO :relaybot::supervisor - started service=gateway\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("context origin follows the filter", func(t *testing.T) {
		out.Reset()
		ctx := ContextWithCorrelationID(context.Background(), "abc12345")
		Ctx(ContextWithOrigin(ctx, "otherlib::io")).Error().Msg("noise")
		Ctx(ContextWithOrigin(ctx, "relaybot::commands")).Info().Msg("handled")
		if got := out.String(); got != "INFO :relaybot::commands - handled correlation_id=abc12345\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("global helpers use the namespace", func(t *testing.T) {
		out.Reset()
		Info().Msg("ready")
		if got := out.String(); got != "INFO :relaybot - ready\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("level threshold applies", func(t *testing.T) {
		out.Reset()
		l := Logger()
		l.Trace().Msg("too quiet")
		if out.Len() != 0 {
			t.Errorf("trace emitted at debug threshold: %q", out.String())
		}
		if zerolog.GlobalLevel() != zerolog.DebugLevel {
			t.Errorf("GlobalLevel() = %v, want debug", zerolog.GlobalLevel())
		}
	})

	t.Run("err helper attaches the error", func(t *testing.T) {
		out.Reset()
		Err(errors.New("refused")).Msg("dial failed")
		if got := out.String(); !strings.HasPrefix(got, "ERROR:relaybot - dial failed error=refused\n") {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("slog logger follows the filter", func(t *testing.T) {
		out.Reset()
		NewSlogLogger("relaybot::supervisor").Info("service started")
		NewSlogLogger("suture").Info("hidden")
		if got := out.String(); got != "INFO :relaybot::supervisor - service started\n" {
			t.Errorf("output = %q", got)
		}
	})
}
