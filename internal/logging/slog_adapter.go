// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler implements slog.Handler on top of a zerolog logger, so
// libraries that only speak slog (sutureslog) still reach the Router under
// an origin of our choosing.
//
// Attributes given to WithAttrs are encoded into the logger's context once,
// not re-encoded for every record. Groups become dotted key prefixes.
type SlogHandler struct {
	logger zerolog.Logger
	prefix string
}

// NewSlogHandler returns a handler whose records carry origin. When the
// installed Router rejects origin the handler reports every level as
// disabled, so slog callers skip building records at all.
func NewSlogHandler(origin string) *SlogHandler {
	return &SlogHandler{logger: For(origin)}
}

// NewSlogHandlerWithLogger wraps an existing zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := slogToZerologLevel(level)
	return h.logger.GetLevel() <= zl && zerolog.GlobalLevel() <= zl
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(slogToZerologLevel(record.Level))
	if event == nil {
		return nil
	}

	if record.NumAttrs() > 0 {
		fields := make([]any, 0, 2*record.NumAttrs())
		record.Attrs(func(attr slog.Attr) bool {
			fields = appendAttr(fields, h.prefix, attr)
			return true
		})
		event = event.Fields(fields)
	}

	event.Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var fields []any
	for _, attr := range attrs {
		fields = appendAttr(fields, h.prefix, attr)
	}
	return &SlogHandler{
		logger: h.logger.With().Fields(fields).Logger(),
		prefix: h.prefix,
	}
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{
		logger: h.logger,
		prefix: h.prefix + name + ".",
	}
}

// appendAttr flattens attr into zerolog's key/value field list. Empty
// attributes are dropped and group members are inlined under "group.".
func appendAttr(fields []any, prefix string, attr slog.Attr) []any {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			fields = appendAttr(fields, nested, member)
		}
		return fields
	}

	return append(fields, prefix+attr.Key, attr.Value.Any())
}

// slogToZerologLevel converts slog.Level to zerolog.Level.
func slogToZerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// NewSlogLogger creates an slog.Logger backed by zerolog with the given
// origin, for libraries like sutureslog.
//
//	slogger := logging.NewSlogLogger("relaybot::supervisor")
//	hook := (&sutureslog.Handler{Logger: slogger}).MustHook()
func NewSlogLogger(origin string) *slog.Logger {
	return slog.New(NewSlogHandler(origin))
}
