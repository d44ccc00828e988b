// Package client is a WebSocket client for the table server, used by the
// command line client and by end-to-end tests.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-table/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	bufferSize = 256
)

// ErrClosed is returned once the connection to the server has gone
var ErrClosed = errors.New("client closed")

// Client represents a WebSocket client for one seat
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *protocol.Message
	receive   chan *protocol.Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	seat     int
	name     string
	state    protocol.GameStateData
	hasState bool
}

// NewClient creates a new WebSocket client. serverURL may use the http, https,
// ws or wss scheme; the /ws path is added when none is given.
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL: serverURL,
		send:      make(chan *protocol.Message, bufferSize),
		receive:   make(chan *protocol.Message, bufferSize),
		logger:    logger.WithPrefix("client"),
		ctx:       ctx,
		cancel:    cancel,
		seat:      -1,
	}
}

// WebSocketURL normalizes a server address into the socket endpoint
func WebSocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, serverURL)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Connect establishes a WebSocket connection to the server
func (c *Client) Connect(ctx context.Context) error {
	wsURL, err := WebSocketURL(c.serverURL)
	if err != nil {
		return err
	}
	c.logger.Info("Connecting to server", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	c.conn = conn

	go c.readPump()
	go c.writePump()

	c.logger.Debug("Connected to server")
	return nil
}

// Close closes the WebSocket connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if c.conn != nil {
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			err = c.conn.Close()
		}
	})
	return err
}

// Done is closed once the connection has ended
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Messages delivers every message received from the server in order.
// It is closed when the connection ends.
func (c *Client) Messages() <-chan *protocol.Message {
	return c.receive
}

// Next waits for the next message of type mt, discarding others
func (c *Client) Next(ctx context.Context, mt protocol.MessageType) (*protocol.Message, error) {
	for {
		select {
		case msg, ok := <-c.receive:
			if !ok {
				return nil, ErrClosed
			}
			if msg.Type == mt {
				return msg, nil
			}
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", mt, ctx.Err())
		}
	}
}

// Seat returns the seat assigned in the welcome message, or -1
func (c *Client) Seat() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seat
}

// Name returns the seat name most recently reported by the server
func (c *Client) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// State returns the latest table snapshot
func (c *Client) State() (protocol.GameStateData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.hasState
}

// Join sets the seat's display name and asks the table to start
func (c *Client) Join(name string) error {
	return c.sendMessage(protocol.MessageTypeJoin, protocol.JoinData{Name: name})
}

// Bet puts amount more chips into the pot
func (c *Client) Bet(amount uint) error {
	return c.sendMessage(protocol.MessageTypeBet, protocol.BetData{Amount: amount})
}

// Call matches the current bet
func (c *Client) Call() error {
	return c.sendMessage(protocol.MessageTypeCall, struct{}{})
}

// Check passes when no chips are owed
func (c *Client) Check() error {
	return c.sendMessage(protocol.MessageTypeCheck, struct{}{})
}

// Fold gives up the hand
func (c *Client) Fold() error {
	return c.sendMessage(protocol.MessageTypeFold, struct{}{})
}

func (c *Client) sendMessage(mt protocol.MessageType, data any) error {
	msg, err := protocol.NewMessage(mt, data)
	if err != nil {
		return err
	}

	select {
	case <-c.ctx.Done():
		return ErrClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrClosed
	default:
		return fmt.Errorf("send buffer full")
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		close(c.receive)
		_ = c.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		msg, err := protocol.Parse(raw)
		if err != nil {
			c.logger.Debug("Dropping malformed message", "error", err)
			continue
		}
		c.track(msg)

		select {
		case c.receive <- msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// track keeps the seat and latest snapshot current
func (c *Client) track(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MessageTypeWelcome:
		var w protocol.WelcomeData
		if err := msg.Decode(&w); err != nil {
			c.logger.Warn("Bad welcome", "error", err)
			return
		}
		c.mu.Lock()
		c.seat, c.name = w.SeatID, w.Name
		c.mu.Unlock()

	case protocol.MessageTypeGameState:
		var gs protocol.GameStateData
		if err := msg.Decode(&gs); err != nil {
			c.logger.Warn("Bad game state", "error", err)
			return
		}
		c.mu.Lock()
		c.state, c.hasState = gs, true
		if c.seat >= 0 && c.seat < len(gs.Players) {
			c.name = gs.Players[c.seat].Name
		}
		c.mu.Unlock()
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				_ = c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
