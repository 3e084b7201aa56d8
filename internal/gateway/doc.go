// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

/*
Package gateway is relaybot's real-time chat client.

A Client holds one websocket connection to the gateway and runs as the
supervisor's foreground task. It does not reconnect: when the connection
ends, Run returns and the process exits with its result.

# Wire Format

Every frame is a JSON object with an op code and a payload:

	{"op":"READY","d":{"session_id":"...","user":{"id":"...","username":"..."}}}
	{"op":"MESSAGE_CREATE","d":{"id":"m1","channel_id":"c1","content":"~ping","author":{...}}}
	{"op":"MESSAGE_REPLY","d":{"channel_id":"c1","reply_to":"m1","content":"Pong!"}}

The client sends only MESSAGE_REPLY. Unknown ops are logged at debug and
malformed frames are logged and skipped.

# Commands

Commands routes messages that start with the configured prefix (default
"~") to registered handlers. Messages from bots and unknown commands are
ignored. The only built-in command is ping, which replies "Pong!".

	cmds := gateway.NewCommands("~")
	cmds.Register("echo", func(ctx context.Context, r gateway.Responder, msg *gateway.Message, args string) error {
	    return r.Reply(ctx, msg, args)
	})

# Lifecycle

	client := gateway.NewClient(gateway.Config{URL: url, Token: token, Commands: cmds})
	err := client.Run(ctx)

Run returns nil when the server closes the connection normally, ctx.Err()
after cancellation (a normal close frame is sent first), and an error for a
failed dial or a broken connection.

# Thread Safety

Reply may be called from any goroutine. Writes are serialized and paced by a
token bucket limiter (golang.org/x/time/rate).
*/
package gateway
