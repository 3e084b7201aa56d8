// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/relaybot/internal/metrics"
)

// newTestRouter writes into an unsynchronized buffer, so concurrent tests
// rely on the router's own locking.
func newTestRouter(format Format, targets ...string) (*Router, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := NewRouter(RouterConfig{
		Filter: NewTargetFilter(targets, &bytes.Buffer{}),
		Format: format,
		Output: out,
	})
	r.stack = func() string { return testStack }
	return r, out
}

// originLogger returns a logger whose events carry origin.
func originLogger(w io.Writer, origin string) *zerolog.Logger {
	l := zerolog.New(w).With().Str(OriginField, origin).Logger()
	return &l
}

func TestRouter_WarnTextScenario(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatText, "svc")
	logger := zerolog.New(r).With().Str(OriginField, "svc").Logger()

	logger.Warn().Msg("disk low")

	got := out.String()
	if !strings.HasPrefix(got, "WARN :svc - disk low\n") {
		t.Fatalf("unexpected first line: %q", got)
	}
	block := strings.TrimPrefix(got, "WARN :svc - disk low\n")
	if strings.TrimSpace(block) == "" {
		t.Error("expected a non-empty stack block after the first line")
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("entry should end with a newline")
	}
}

func TestRouter_FiltersOrigins(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatText, "myservice")

	originLogger(r, "otherlib::io").Error().Msg("dropped")
	if out.Len() != 0 {
		t.Fatalf("filtered origin produced output: %q", out.String())
	}

	originLogger(r, "myservice::net").Info().Msg("kept")
	if got := out.String(); got != "INFO :myservice::net - kept\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRouter_MissingOriginUsesNamespace(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatText)
	logger := zerolog.New(r)
	logger.Info().Msg("hello")

	if got := out.String(); got != "INFO :relaybot - hello\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRouter_StackOnlyForActionableLevels(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(FormatStructured, "all")
	var calls atomic.Int32
	r.stack = func() string {
		calls.Add(1)
		return testStack
	}
	logger := zerolog.New(r)

	logger.Debug().Msg("d")
	logger.Info().Msg("i")
	if calls.Load() != 0 {
		t.Fatalf("stack captured %d times for non-actionable levels", calls.Load())
	}

	logger.Warn().Msg("w")
	logger.Error().Msg("e")
	if calls.Load() != 2 {
		t.Errorf("stack captured %d times, want 2", calls.Load())
	}
}

func TestRouter_SourceLocation(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatStructured, "all")
	logger := zerolog.New(r).Hook(sourceHook{}).With().Str(OriginField, "relaybot::test").Logger()

	logger.Info().Msg("located")

	doc := decodeEntry(t, strings.TrimSpace(out.String()))
	loc, ok := doc["logging.googleapis.com/sourceLocation"].(map[string]any)
	if !ok {
		t.Fatalf("sourceLocation missing: %v", doc)
	}
	if file, _ := loc["file"].(string); !strings.HasSuffix(file, "router_test.go") {
		t.Errorf("file = %v, want router_test.go", loc["file"])
	}
	if fn, _ := loc["function"].(string); !strings.HasSuffix(fn, "TestRouter_SourceLocation") {
		t.Errorf("function = %v, want the calling test", loc["function"])
	}
	if line, _ := loc["line"].(string); line == "" || line == "0" {
		t.Errorf("line = %v", loc["line"])
	}
	if _, ok := doc["fields"]; ok {
		t.Errorf("call-site keys leaked into fields: %v", doc["fields"])
	}
}

func TestRouter_ExtraFields(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatText, "all")
	logger := zerolog.New(r).With().Timestamp().Str(OriginField, "relaybot").Logger()
	logger.Info().Str("user", "alice").Int("n", 3).Msg("joined")

	if got := out.String(); got != "INFO :relaybot - joined user=alice n=3\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRouter_WriteWithoutLevelHint(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatText, "all")
	if _, err := r.Write([]byte(`{"level":"debug","origin":"relaybot","message":"raw"}` + "\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := out.String(); got != "DEBUG:relaybot - raw\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRouter_PassesThroughNonJSON(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatStructured)
	n, err := r.Write([]byte("plain text\n"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len("plain text\n") {
		t.Errorf("n = %d", n)
	}
	if got := out.String(); got != "plain text\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRouter_ConcurrentWritersProduceWholeLines(t *testing.T) {
	t.Parallel()

	const writers, perWriter = 32, 100

	r, out := newTestRouter(FormatStructured, "all")
	logger := zerolog.New(r).With().Str(OriginField, "relaybot::load").Logger()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				logger.Info().Int("writer", w).Int("seq", i).Msg("tick")
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("got %d lines, want %d", len(lines), writers*perWriter)
	}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Fatalf("interleaved or truncated line: %q", line)
		}
	}
}

func TestRouter_CountsOutcomes(t *testing.T) {
	filtered := metrics.LogRecords.WithLabelValues("INFO", metrics.OutcomeFiltered)
	emitted := metrics.LogRecords.WithLabelValues("INFO", metrics.OutcomeEmitted)
	beforeFiltered := testutil.ToFloat64(filtered)
	beforeEmitted := testutil.ToFloat64(emitted)

	r, _ := newTestRouter(FormatText, "^relaybot")
	originLogger(r, "otherlib").Info().Msg("x")
	originLogger(r, "relaybot").Info().Msg("y")

	if got := testutil.ToFloat64(filtered) - beforeFiltered; got != 1 {
		t.Errorf("filtered delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(emitted) - beforeEmitted; got != 1 {
		t.Errorf("emitted delta = %v, want 1", got)
	}
}

func TestNewRoutedLogger(t *testing.T) {
	t.Parallel()

	r, out := newTestRouter(FormatStructured, "^relaybot")

	t.Run("rejected origin never builds events", func(t *testing.T) {
		var calls atomic.Int32
		r.stack = func() string {
			calls.Add(1)
			return testStack
		}
		l := newRoutedLogger(r, "otherlib::io")
		if l.GetLevel() != zerolog.Disabled {
			t.Fatalf("GetLevel() = %v, want disabled", l.GetLevel())
		}
		if e := l.Error(); e != nil {
			t.Error("disabled logger returned an event")
		}
		if out.Len() != 0 || calls.Load() != 0 {
			t.Errorf("rejected origin reached the router: %q", out.String())
		}
	})

	t.Run("allowed origin carries source location", func(t *testing.T) {
		l := newRoutedLogger(r, "relaybot::gateway").With().Str(OriginField, "relaybot::gateway").Logger()
		l.Info().Msg("connected")

		doc := decodeEntry(t, strings.TrimSpace(out.String()))
		loc, ok := doc["logging.googleapis.com/sourceLocation"].(map[string]any)
		if !ok {
			t.Fatalf("sourceLocation missing: %v", doc)
		}
		if file, _ := loc["file"].(string); !strings.HasSuffix(file, "router_test.go") {
			t.Errorf("file = %v, want router_test.go", loc["file"])
		}
	})
}
