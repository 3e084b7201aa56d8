// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package gateway

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/relaybot/internal/logging"
	"github.com/tomtom215/relaybot/internal/metrics"
)

// Responder sends a reply to the channel a message came from.
type Responder interface {
	Reply(ctx context.Context, msg *Message, content string) error
}

// CommandFunc handles one command invocation. args is the text after the
// command name with surrounding whitespace removed.
type CommandFunc func(ctx context.Context, r Responder, msg *Message, args string) error

// Commands routes prefixed messages to registered handlers.
type Commands struct {
	prefix string

	mu       sync.RWMutex
	handlers map[string]CommandFunc
}

// NewCommands returns a router for prefix with the built-in ping command
// registered.
func NewCommands(prefix string) *Commands {
	c := &Commands{
		prefix:   prefix,
		handlers: make(map[string]CommandFunc),
	}
	c.Register("ping", Ping)
	return c
}

// Register adds or replaces the handler for name.
func (c *Commands) Register(name string, fn CommandFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[name] = fn
}

// Prefix returns the command prefix.
func (c *Commands) Prefix() string {
	return c.prefix
}

// Parse splits "~name args" into its parts. ok is false when content does
// not start with the prefix or no name follows it directly.
func (c *Commands) Parse(content string) (name, args string, ok bool) {
	rest, found := strings.CutPrefix(content, c.prefix)
	if !found || rest == "" {
		return "", "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || !strings.HasPrefix(rest, fields[0]) {
		return "", "", false
	}
	name = fields[0]
	args = strings.TrimSpace(strings.TrimPrefix(rest, name))
	return name, args, true
}

// Dispatch runs the command named in msg, if any. Messages from bots,
// messages without the prefix, and unknown commands are ignored and report
// handled=false.
func (c *Commands) Dispatch(ctx context.Context, r Responder, msg *Message) (handled bool, err error) {
	if msg.Author.Bot {
		return false, nil
	}

	name, args, ok := c.Parse(msg.Content)
	if !ok {
		return false, nil
	}

	c.mu.RLock()
	fn, known := c.handlers[name]
	c.mu.RUnlock()
	if !known {
		return false, nil
	}

	ctx = logging.ContextWithOrigin(ctx, "relaybot::commands")
	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := logging.Ctx(ctx)

	start := time.Now()
	err = fn(ctx, r, msg, args)
	metrics.RecordCommand(name, time.Since(start), err)

	if err != nil {
		logger.Warn().Err(err).Str("command", name).Str("channel_id", msg.ChannelID).Msg("command failed")
		return true, err
	}
	logger.Debug().Str("command", name).Str("channel_id", msg.ChannelID).Dur("took", time.Since(start)).Msg("command handled")
	return true, nil
}

// Ping replies "Pong!".
func Ping(ctx context.Context, r Responder, msg *Message, _ string) error {
	return r.Reply(ctx, msg, "Pong!")
}
