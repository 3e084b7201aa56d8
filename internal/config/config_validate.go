// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package config

import (
	"fmt"

	"github.com/tomtom215/relaybot/internal/validation"
)

// Validate checks all configuration values.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return c.validatePorts()
}

// validatePorts rejects a metrics server sharing the health check port.
func (c *Config) validatePorts() error {
	if c.Metrics.Enabled() && c.Metrics.Port == c.Health.Port {
		return fmt.Errorf("METRICS_PORT must differ from PORT (both %d)", c.Health.Port)
	}
	return nil
}
