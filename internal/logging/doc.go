// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

// Package logging provides zerolog-based logging for Relaybot with a single
// process-wide Router that emits either human-readable text or Cloud Logging
// structured JSON on stdout.
//
// # Overview
//
// Every log call in the process is a zerolog event. The installed Router
// receives the encoded event, and:
//
//  1. Filters it by origin against a TargetFilter (regex allow-list).
//  2. Captures a stack trace for Error and Warn records.
//  3. Renders it with the configured Formatter (TextFormatter or
//     StructuredFormatter).
//  4. Writes the result, newline-terminated, in a single Write.
//
// # Quick Start
//
//	router, err := logging.Setup(logging.Config{
//	    Level:   "info",
//	    Format:  os.Getenv("LOG_FORMAT"),
//	    Targets: []string{"relaybot"},
//	})
//	if err != nil {
//	    // a Router was already installed: programming error
//	}
//
//	gwLog := logging.For("relaybot::gateway")
//	gwLog.Warn().Msg("disk low")
//
// # Configuration
//
// Environment Variables (resolved by internal/config):
//
//	LOG_FORMAT  - text, json (default: json; unknown values warn and use json)
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_TARGETS - comma-separated origin regexes, "all" disables filtering
//	              (default: relaybot)
//
// # Output Formats
//
// Text:
//
//	WARN :relaybot::gateway - disk low
//	goroutine 1 [running]:
//	...
//
// Structured:
//
//	{"severity":"WARNING","message":"disk low\ngoroutine 1 [running]:...",
//	 "logging.googleapis.com/operation":{"id":"relaybot","producer":"relaybot::gateway"},
//	 "logging.googleapis.com/sourceLocation":{"file":"...","line":"42","function":"..."},
//	 "time":"2026-01-03T10:30:00.123456Z"}
//
// Error records additionally carry "@type" so Cloud Error Reporting picks
// them up.
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. Install succeeds at
// most once per process; a second call returns ErrSinkInstalled.
package logging
