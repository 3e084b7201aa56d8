// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import "strings"

// Field names written by zerolog events and read back by the Router.
const (
	OriginField   = "origin"
	FileField     = "file"
	LineField     = "line"
	FunctionField = "function"
)

// Record is a single decoded log call.
type Record struct {
	Level    Level
	Origin   string
	Message  string
	File     string
	Line     int
	Function string

	// Fields holds any structured fields beyond the reserved ones, in the
	// order they were added to the event.
	Fields []Field
}

// Field is a structured key/value pair attached to a record.
type Field struct {
	Key string
	// Text is the human form: strings unquoted, everything else as JSON.
	Text string
	// Raw is the JSON encoding of the value.
	Raw []byte
}

// OperationID returns the top-level segment of the record's origin.
func (r *Record) OperationID() string {
	return rootSegment(r.Origin)
}

// rootSegment returns the part of a colon- or dot-separated origin before
// the first separator.
func rootSegment(origin string) string {
	if i := strings.IndexAny(origin, ":."); i >= 0 {
		return origin[:i]
	}
	return origin
}
