// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// packageDir is the directory holding this package's sources.
var packageDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

// skippedFunctionPrefixes are frames that sit between a log statement and
// the hook and never count as the call site.
var skippedFunctionPrefixes = []string{
	"github.com/rs/zerolog.",
	"log/slog.",
	"github.com/thejerf/",
}

// sourceHook stamps each event with the file, line and function of the
// statement that emitted it.
type sourceHook struct{}

// Run implements zerolog.Hook.
func (sourceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	frame, ok := callSite()
	if !ok {
		return
	}
	e.Str(FileField, frame.File).Int(LineField, frame.Line).Str(FunctionField, frame.Function)
}

// callSite walks outward from the hook to the first frame outside zerolog,
// slog and the non-test sources of this package.
func callSite() (runtime.Frame, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !skipFrame(frame) {
			return frame, frame.Function != ""
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

func skipFrame(frame runtime.Frame) bool {
	for _, prefix := range skippedFunctionPrefixes {
		if strings.HasPrefix(frame.Function, prefix) {
			return true
		}
	}
	if filepath.Dir(frame.File) == packageDir && !strings.HasSuffix(frame.File, "_test.go") {
		return true
	}
	return false
}
