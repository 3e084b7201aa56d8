// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package gateway

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Gateway operation codes.
const (
	OpReady         = "READY"
	OpMessageCreate = "MESSAGE_CREATE"
	OpMessageReply  = "MESSAGE_REPLY"
)

// Frame is the envelope of every gateway message: {"op": "...", "d": {...}}.
type Frame struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
}

// Ready is the payload of a READY frame.
type Ready struct {
	SessionID string `json:"session_id"`
	User      Author `json:"user"`
}

// Author identifies who sent a message.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// Message is the payload of a MESSAGE_CREATE frame.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Author    Author `json:"author"`
}

// Reply is the payload of a MESSAGE_REPLY frame.
type Reply struct {
	ChannelID string `json:"channel_id"`
	ReplyTo   string `json:"reply_to"`
	Content   string `json:"content"`
}

var errMissingOp = errors.New("decode frame: missing op")

// encodeFrame wraps payload in a Frame and returns the wire bytes.
func encodeFrame(op string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", op, err)
	}
	return json.Marshal(Frame{Op: op, Data: data})
}

// decodeFrame parses the envelope; the payload stays raw until the op is known.
func decodeFrame(data []byte) (*Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if frame.Op == "" {
		return nil, errMissingOp
	}
	return &frame, nil
}
