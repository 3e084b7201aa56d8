// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ReportedErrorEventType marks an entry for Cloud Error Reporting.
// See https://cloud.google.com/error-reporting/docs/formatting-error-messages
const ReportedErrorEventType = "type.googleapis.com/google.devtools.clouderrorreporting.v1beta1.ReportedErrorEvent"

// CloudLogEntry is a structured log line in the shape the Cloud Logging
// agent lifts into a LogEntry.
type CloudLogEntry struct {
	Severity       Severity                   `json:"severity"`
	Message        string                     `json:"message"`
	ReportType     string                     `json:"@type,omitempty"`
	Operation      CloudOperation             `json:"logging.googleapis.com/operation"`
	SourceLocation *CloudSourceLocation       `json:"logging.googleapis.com/sourceLocation,omitempty"`
	Time           time.Time                  `json:"time"`
	Fields         map[string]json.RawMessage `json:"fields,omitempty"`
}

// CloudOperation groups entries by origin.
type CloudOperation struct {
	ID       string `json:"id"`
	Producer string `json:"producer"`
}

// CloudSourceLocation is the call site of the log statement. Line is a
// string, as Cloud Logging encodes int64 values.
type CloudSourceLocation struct {
	File     string `json:"file,omitempty"`
	Line     string `json:"line,omitempty"`
	Function string `json:"function,omitempty"`
}

// NewCloudLogEntry builds the entry for rec. The stack is appended to the
// message for Error and Warn so it is visible even where the platform does
// not surface a dedicated stack field.
func NewCloudLogEntry(rec *Record, stack string, now time.Time) *CloudLogEntry {
	entry := &CloudLogEntry{
		Severity: rec.Level.Severity(),
		Message:  rec.Message,
		Operation: CloudOperation{
			ID:       rec.OperationID(),
			Producer: rec.Origin,
		},
		Time: now.UTC(),
	}

	if rec.Level == LevelError {
		entry.ReportType = ReportedErrorEventType
	}
	if rec.Level.Actionable() && stack != "" {
		entry.Message = rec.Message + "\n" + stack
	}

	if rec.File != "" || rec.Function != "" {
		loc := &CloudSourceLocation{File: rec.File, Function: rec.Function}
		if rec.Line > 0 {
			loc.Line = strconv.Itoa(rec.Line)
		}
		entry.SourceLocation = loc
	}

	if len(rec.Fields) > 0 {
		entry.Fields = make(map[string]json.RawMessage, len(rec.Fields))
		for _, f := range rec.Fields {
			entry.Fields[f.Key] = json.RawMessage(f.Raw)
		}
	}
	return entry
}

// Marshal encodes the entry as single-line JSON.
func (e *CloudLogEntry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
