// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

const testStack = "goroutine 7 [running]:\nmain.main()\n\t/src/main.go:12 +0x1d"

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		want     Format
		warnings bool
	}{
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{" text ", FormatText, false},
		{"json", FormatStructured, false},
		{"JSON", FormatStructured, false},
		{"structured", FormatStructured, false},
		{"", FormatStructured, false},
		{"yaml", FormatStructured, true},
		{"console", FormatStructured, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			var diag bytes.Buffer
			if got := ParseFormat(tt.value, &diag); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.value, got, tt.want)
			}
			warned := strings.Contains(diag.String(), "Invalid LOG_FORMAT: "+tt.value+". Defaulting to JSON.")
			if warned != tt.warnings {
				t.Errorf("ParseFormat(%q) warning = %v, want %v (diag %q)", tt.value, warned, tt.warnings, diag.String())
			}
		})
	}
}

func TestTextFormatter_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level Level
		want  string
	}{
		{"error carries stack", LevelError, "ERROR:svc - disk low\n" + testStack},
		{"warn carries stack", LevelWarn, "WARN :svc - disk low\n" + testStack},
		{"info single line", LevelInfo, "INFO :svc - disk low"},
		{"debug single line", LevelDebug, "DEBUG:svc - disk low"},
		{"trace single line", LevelTrace, "TRACE:svc - disk low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &Record{Level: tt.level, Origin: "svc", Message: "disk low"}
			if got := (TextFormatter{}).Render(rec, testStack); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextFormatter_RenderFields(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Level:   LevelInfo,
		Origin:  "relaybot::gateway",
		Message: "connected",
		Fields: []Field{
			{Key: "url", Text: "wss://example.test", Raw: []byte(`"wss://example.test"`)},
			{Key: "attempt", Text: "2", Raw: []byte(`2`)},
		},
	}

	want := "INFO :relaybot::gateway - connected url=wss://example.test attempt=2"
	if got := (TextFormatter{}).Render(rec, ""); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func decodeEntry(t *testing.T, line string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, line)
	}
	return doc
}

func TestStructuredFormatter_Error(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Level:    LevelError,
		Origin:   "myservice::net",
		Message:  "boom",
		File:     "/src/net/conn.go",
		Line:     42,
		Function: "myservice/net.(*Conn).Read",
	}
	line := StructuredFormatter{Now: func() time.Time { return fixedTime }}.Render(rec, testStack)

	if strings.Contains(line, "\n") {
		t.Fatalf("structured entry spans multiple lines: %q", line)
	}

	doc := decodeEntry(t, line)
	if doc["severity"] != "ERROR" {
		t.Errorf("severity = %v, want ERROR", doc["severity"])
	}
	if doc["@type"] != ReportedErrorEventType {
		t.Errorf("@type = %v, want %s", doc["@type"], ReportedErrorEventType)
	}
	if doc["message"] != "boom\n"+testStack {
		t.Errorf("message = %q, want message followed by stack", doc["message"])
	}
	if doc["time"] != "2026-03-14T14:09:26Z" {
		t.Errorf("time = %v, want UTC RFC 3339", doc["time"])
	}

	op, ok := doc["logging.googleapis.com/operation"].(map[string]any)
	if !ok {
		t.Fatalf("operation missing: %v", doc)
	}
	if op["id"] != "myservice" || op["producer"] != "myservice::net" {
		t.Errorf("operation = %v, want id myservice producer myservice::net", op)
	}

	loc, ok := doc["logging.googleapis.com/sourceLocation"].(map[string]any)
	if !ok {
		t.Fatalf("sourceLocation missing: %v", doc)
	}
	if loc["file"] != "/src/net/conn.go" || loc["line"] != "42" || loc["function"] != "myservice/net.(*Conn).Read" {
		t.Errorf("sourceLocation = %v", loc)
	}
}

func TestStructuredFormatter_ReportTypeOnlyForErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    Level
		severity string
		stack    bool
	}{
		{LevelWarn, "WARNING", true},
		{LevelInfo, "INFO", false},
		{LevelDebug, "DEBUG", false},
		{LevelTrace, "DEFAULT", false},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			t.Parallel()
			rec := &Record{Level: tt.level, Origin: "svc", Message: "disk low"}
			doc := decodeEntry(t, StructuredFormatter{}.Render(rec, testStack))

			if _, ok := doc["@type"]; ok {
				t.Errorf("@type present for %s", tt.severity)
			}
			if doc["severity"] != tt.severity {
				t.Errorf("severity = %v, want %s", doc["severity"], tt.severity)
			}
			hasStack := strings.Contains(doc["message"].(string), testStack)
			if hasStack != tt.stack {
				t.Errorf("stack in message = %v, want %v", hasStack, tt.stack)
			}
			if _, ok := doc["logging.googleapis.com/sourceLocation"]; ok {
				t.Error("sourceLocation should be omitted when the record has no call site")
			}
		})
	}
}

func TestStructuredFormatter_Fields(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Level:   LevelInfo,
		Origin:  "relaybot",
		Message: "ping",
		Fields: []Field{
			{Key: "remote", Text: "10.0.0.1", Raw: []byte(`"10.0.0.1"`)},
			{Key: "count", Text: "3", Raw: []byte(`3`)},
			{Key: "tags", Text: `["a","b"]`, Raw: []byte(`["a","b"]`)},
		},
	}
	doc := decodeEntry(t, StructuredFormatter{}.Render(rec, ""))

	fields, ok := doc["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields missing: %v", doc)
	}
	if fields["remote"] != "10.0.0.1" {
		t.Errorf("fields.remote = %v", fields["remote"])
	}
	if fields["count"] != float64(3) {
		t.Errorf("fields.count = %v", fields["count"])
	}
	if tags, ok := fields["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("fields.tags = %v", fields["tags"])
	}
}

func TestRootSegment(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"myservice::net":   "myservice",
		"relaybot.gateway": "relaybot",
		"relaybot":         "relaybot",
		"a:b.c":            "a",
		"":                 "",
	}
	for origin, want := range tests {
		if got := rootSegment(origin); got != want {
			t.Errorf("rootSegment(%q) = %q, want %q", origin, got, want)
		}
	}
}
