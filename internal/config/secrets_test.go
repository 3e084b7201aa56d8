// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	return path
}

func TestLoadToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "abc.def", "abc.def"},
		{"trailing newline", "abc.def\n", "abc.def"},
		{"surrounding whitespace", "  \tabc.def \r\n", "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LoadToken(writeSecret(t, tt.content))
			if err != nil {
				t.Fatalf("LoadToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadToken_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent")
	_, err := LoadToken(path)
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("LoadToken() error = %v, want ErrTokenNotFound", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the path", err)
	}
}

func TestLoadToken_Empty(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "\n", "   \t\n"} {
		if _, err := LoadToken(writeSecret(t, content)); !errors.Is(err, ErrEmptyToken) {
			t.Errorf("LoadToken(%q) error = %v, want ErrEmptyToken", content, err)
		}
	}
}
