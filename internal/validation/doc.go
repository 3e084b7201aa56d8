// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator that reports fields by their koanf
// key, so a failure reads "health.port must be at most 65535" rather than naming
// the Go field. A custom "wsurl" tag accepts ws:// and wss:// URLs only.
//
//	type GatewayConfig struct {
//	    URL string `koanf:"url" validate:"required,wsurl"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("configuration validation failed: %w", err)
//	}
package validation
