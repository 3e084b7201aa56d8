// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Format selects how the Router renders records.
type Format int

const (
	// FormatStructured renders one Cloud Logging JSON document per line.
	FormatStructured Format = iota
	// FormatText renders "LEVEL:origin - message" lines for humans.
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "json"
}

// ParseFormat resolves a LOG_FORMAT value. Structured output is the default
// because it is what the hosting platform ingests. Unrecognized values are
// reported on diag (os.Stderr when nil) and fall back to structured.
func ParseFormat(value string, diag io.Writer) Format {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "text":
		return FormatText
	case "", "json", "structured":
		return FormatStructured
	default:
		if diag == nil {
			diag = os.Stderr
		}
		fmt.Fprintf(diag, "Invalid LOG_FORMAT: %s. Defaulting to JSON.\n", value)
		return FormatStructured
	}
}

// Formatter renders a record, plus the stack captured for actionable
// levels, to a single output entry without the trailing newline.
type Formatter interface {
	Render(rec *Record, stack string) string
}

// Formatter returns the renderer for the format.
func (f Format) Formatter() Formatter {
	if f == FormatText {
		return TextFormatter{}
	}
	return StructuredFormatter{}
}

// TextFormatter renders "<LEVEL padded to 5>:<origin> - <message>", then any
// extra fields as key=value, then a newline and the stack for Error/Warn.
type TextFormatter struct{}

// Render implements Formatter.
func (TextFormatter) Render(rec *Record, stack string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s:%s - %s", rec.Level.Label(), rec.Origin, rec.Message)
	for _, f := range rec.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Text)
	}
	if rec.Level.Actionable() {
		b.WriteByte('\n')
		b.WriteString(stack)
	}
	return b.String()
}

// StructuredFormatter renders a CloudLogEntry as single-line JSON.
type StructuredFormatter struct {
	// Now overrides the entry timestamp source. Defaults to time.Now.
	Now func() time.Time
}

// Render implements Formatter. An encoding failure is a defect in this
// package and panics rather than dropping the record.
func (f StructuredFormatter) Render(rec *Record, stack string) string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	data, err := NewCloudLogEntry(rec, stack, now()).Marshal()
	if err != nil {
		panic(fmt.Sprintf("logging: encode cloud log entry: %v", err))
	}
	return string(data)
}
