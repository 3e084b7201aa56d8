// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/relaybot/internal/logging"
	"github.com/tomtom215/relaybot/internal/metrics"
)

const (
	// writeWait bounds every write, including pings and the close frame.
	writeWait = 10 * time.Second

	defaultPingInterval = 30 * time.Second
	defaultSendRate     = 5
)

// ErrClosed is returned by Reply when the client has no open connection.
var ErrClosed = errors.New("gateway: connection closed")

// Config configures a Client.
type Config struct {
	// URL is the ws:// or wss:// gateway endpoint.
	URL string

	// Token authenticates the bot; it is sent as "Authorization: Bot <token>".
	Token string

	// Commands routes MESSAGE_CREATE frames. Default: NewCommands("~").
	Commands *Commands

	// PingInterval is the keepalive period. The read deadline is twice this.
	// Default: 30s
	PingInterval time.Duration

	// SendRate caps replies per second. Default: 5
	SendRate float64

	// Dialer overrides the websocket dialer, mainly for tests.
	Dialer *websocket.Dialer
}

// Client is a single-connection gateway client. It connects once, serves
// frames until the connection ends, and does not reconnect.
//
// Client implements supervisor.Task.
type Client struct {
	cfg     Config
	limiter *rate.Limiter
	logger  zerolog.Logger

	// writeMu serializes data frames; gorilla allows one concurrent writer.
	writeMu sync.Mutex
	connMu  sync.RWMutex
	conn    *websocket.Conn
}

// NewClient creates a client. Nothing is dialled until Run.
func NewClient(cfg Config) *Client {
	if cfg.Commands == nil {
		cfg.Commands = NewCommands("~")
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.SendRate <= 0 {
		cfg.SendRate = defaultSendRate
	}
	if cfg.Dialer == nil {
		cfg.Dialer = &websocket.Dialer{
			HandshakeTimeout:  10 * time.Second,
			EnableCompression: true,
			Proxy:             http.ProxyFromEnvironment,
		}
	}

	burst := int(cfg.SendRate)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.SendRate), burst),
		logger:  logging.For("relaybot::gateway"),
	}
}

// Run connects and serves the gateway until the connection ends.
//
// It returns nil when the server closes the connection normally, ctx.Err()
// when ctx is cancelled, and an error for a failed dial or any other read
// failure.
func (c *Client) Run(ctx context.Context) error {
	header := http.Header{}
	header.Set("Authorization", "Bot "+c.cfg.Token)

	conn, resp, err := c.cfg.Dialer.DialContext(ctx, c.cfg.URL, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return fmt.Errorf("gateway dial failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("gateway dial: %w", err)
	}

	c.setConn(conn)
	metrics.SetGatewayConnected(true)
	defer func() {
		c.setConn(nil)
		_ = conn.Close()
		metrics.SetGatewayConnected(false)
	}()

	c.logger.Info().Str("url", c.cfg.URL).Msg("gateway connected")

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ReadMessage does not take a context; a close frame plus Close unblocks it.
	stop := context.AfterFunc(ctx, func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
	})
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.pingLoop(loopCtx, conn)
	}()
	defer wg.Wait()
	defer cancel()

	return c.listen(ctx, conn)
}

func (c *Client) listen(ctx context.Context, conn *websocket.Conn) error {
	readWait := 2 * c.cfg.PingInterval
	extend := func() error { return conn.SetReadDeadline(time.Now().Add(readWait)) }

	if err := extend(); err != nil {
		return fmt.Errorf("gateway set read deadline: %w", err)
	}
	conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info().Msg("gateway closed for shutdown")
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Msg("gateway closed normally")
				return nil
			}
			return fmt.Errorf("gateway read: %w", err)
		}
		_ = extend()

		c.handleFrame(ctx, data)
	}
}

func (c *Client) handleFrame(ctx context.Context, data []byte) {
	frame, err := decodeFrame(data)
	if err != nil {
		metrics.RecordGatewayFrame("")
		c.logger.Warn().Err(err).Int("bytes", len(data)).Msg("skipping malformed gateway frame")
		return
	}
	metrics.RecordGatewayFrame(frame.Op)

	switch frame.Op {
	case OpReady:
		var ready Ready
		if err := json.Unmarshal(frame.Data, &ready); err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed READY payload")
			return
		}
		c.logger.Info().
			Str("session_id", ready.SessionID).
			Str("user", ready.User.Username).
			Msg("gateway session ready")

	case OpMessageCreate:
		var msg Message
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed MESSAGE_CREATE payload")
			return
		}
		// Command errors are logged and counted by Dispatch.
		_, _ = c.cfg.Commands.Dispatch(ctx, c, &msg)

	default:
		c.logger.Debug().Str("op", frame.Op).Msg("ignoring gateway frame")
	}
}

// Reply sends content to the message's channel as a reply to it. Sends are
// paced by the configured rate and serialized.
func (c *Client) Reply(ctx context.Context, msg *Message, content string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gateway reply: %w", err)
	}

	data, err := encodeFrame(OpMessageReply, Reply{
		ChannelID: msg.ChannelID,
		ReplyTo:   msg.ID,
		Content:   content,
	})
	if err != nil {
		return err
	}
	return c.write(data)
}

func (c *Client) write(data []byte) error {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn == nil {
		return ErrClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("gateway set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("gateway write: %w", err)
	}
	return nil
}

func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				// The read loop sees the broken connection and ends Run.
				c.logger.Debug().Err(err).Msg("gateway ping failed")
				return
			}
		}
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.conn = conn
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	return "gateway"
}
