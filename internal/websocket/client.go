package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = pongTimeout * 9 / 10

	// Screens only listen, so inbound frames stay small
	readLimit = 512

	sendBuffer = 16
)

// Client is one planner screen connected over a WebSocket
type Client struct {
	id   string
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
	once sync.Once
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		out:  make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Send queues data for the writer; it never blocks
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.out <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrClientTooSlow
	}
}

// Close stops the client and closes the connection. Later calls are no-ops.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Serve registers the client with the hub and starts its reader and writer.
// The client unregisters itself when the peer goes away.
func (c *Client) Serve(hub *Hub) {
	hub.Register(c)
	go c.writeLoop()
	go func() {
		c.readLoop()
		hub.Unregister(c)
		_ = c.Close()
	}()
}

// readLoop keeps the read deadline moving with pongs and discards anything the peer sends
func (c *Client) readLoop() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writeLoop() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
			return

		case data := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket write failed")
				_ = c.Close()
				return
			}

		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}
