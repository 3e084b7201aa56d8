// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrTokenNotFound is returned when the token secret file does not exist.
	ErrTokenNotFound = errors.New("token file not found")

	// ErrEmptyToken is returned when the token secret file holds only whitespace.
	ErrEmptyToken = errors.New("token file is empty")
)

// LoadToken reads the bot token from a mounted secret file.
// Surrounding whitespace, including the trailing newline most secret
// managers add, is trimmed.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTokenNotFound, path)
		}
		return "", fmt.Errorf("read token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyToken, path)
	}
	return token, nil
}
