package ws

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// Client is a multiplayer.Link over a WebSocket connection to a relay.
type Client struct {
	conn     *websocket.Conn
	logger   *log.Logger
	incoming chan []byte

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

var _ multiplayer.Link = (*Client)(nil)

// Dial connects to the relay at url.
func Dial(ctx context.Context, url string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}

	c := &Client{
		conn:     conn,
		logger:   logger,
		incoming: make(chan []byte, 64),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.incoming)
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("relay connection lost", "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case c.incoming <- data:
		case <-c.done:
			return
		}
	}
}

// Send writes one text frame.
func (c *Client) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.done:
		return multiplayer.ErrLinkClosed
	default:
	}

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("ws: send: %w", err)
	}
	return nil
}

// Incoming returns the payload channel. It closes when the connection ends.
func (c *Client) Incoming() <-chan []byte {
	return c.incoming
}

// Close sends a close frame and tears the connection down.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		c.writeMu.Lock()
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}
