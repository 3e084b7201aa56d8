// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import "github.com/rs/zerolog"

// Level is the ordered severity of a log record, most severe first.
type Level int

const (
	LevelError Level = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Severity is the Cloud Logging LogSeverity of a structured entry.
type Severity string

const (
	SeverityDefault Severity = "DEFAULT"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Label returns the upper-case text label used by the text format.
func (l Level) Label() string {
	label, _ := l.Map()
	return label
}

// Severity returns the Cloud Logging severity for the level.
func (l Level) Severity() Severity {
	_, severity := l.Map()
	return severity
}

// Map returns the text label and cloud severity for the level.
// Unknown values are treated as Info.
func (l Level) Map() (string, Severity) {
	switch l {
	case LevelError:
		return "ERROR", SeverityError
	case LevelWarn:
		return "WARN", SeverityWarning
	case LevelDebug:
		return "DEBUG", SeverityDebug
	case LevelTrace:
		return "TRACE", SeverityDefault
	default:
		return "INFO", SeverityInfo
	}
}

// Actionable reports whether records at this level carry a stack trace.
func (l Level) Actionable() bool {
	return l == LevelError || l == LevelWarn
}

func (l Level) String() string {
	return l.Label()
}

// levelFromZerolog folds zerolog's wider level set onto Level.
// Fatal and panic events are reported as errors.
func levelFromZerolog(level zerolog.Level) Level {
	switch level {
	case zerolog.TraceLevel:
		return LevelTrace
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelError
	default:
		return LevelInfo
	}
}
