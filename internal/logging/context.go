// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CorrelationIDField is the JSON key Ctx adds when the context carries a
// correlation ID.
const CorrelationIDField = "correlation_id"

type scopeKey struct{}

// scope is what a request or command carries for logging. It is copied on
// every change so contexts further up the chain are never affected.
type scope struct {
	origin        string
	logger        *zerolog.Logger
	correlationID string
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, s scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// GenerateCorrelationID creates a new unique correlation ID.
// Returns the first 8 characters of a UUID for readability.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// ContextWithCorrelationID returns a new context with the given correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.correlationID = id
	return withScope(ctx, s)
}

// ContextWithNewCorrelationID returns a context with a newly generated correlation ID.
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext retrieves the correlation ID from context.
// Returns empty string if not present.
func CorrelationIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).correlationID
}

// ContextWithOrigin scopes ctx to origin. The logger is resolved against the
// installed Router once here, so a rejected origin costs nothing per call to
// Ctx.
func ContextWithOrigin(ctx context.Context, origin string) context.Context {
	s := scopeFrom(ctx)
	logger := For(origin)
	s.origin = origin
	s.logger = &logger
	return withScope(ctx, s)
}

// ContextWithLogger stores a specific logger in the context, replacing any
// origin-derived one. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	s := scopeFrom(ctx)
	s.logger = &logger
	return withScope(ctx, s)
}

// LoggerFromContext retrieves a logger from context.
// Returns the global logger if no logger is stored in context.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return *l
	}
	return Logger()
}

// Ctx returns the context's logger with the correlation ID, if any, added.
//
//	logging.Ctx(ctx).Info().Msg("Command dispatched")
//	// {"level":"info","origin":"relaybot::gateway","correlation_id":"abc12345",...}
func Ctx(ctx context.Context) *zerolog.Logger {
	s := scopeFrom(ctx)
	logger := Logger()
	if s.logger != nil {
		logger = *s.logger
	}
	if s.correlationID != "" && logger.GetLevel() != zerolog.Disabled {
		logger = logger.With().Str(CorrelationIDField, s.correlationID).Logger()
	}
	return &logger
}
