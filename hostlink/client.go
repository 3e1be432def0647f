package hostlink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/corkboard"
)

// sendQueue bounds the outbound requests waiting for the writer.
const sendQueue = 64

// Client is the canvas side of the link. It implements corkboard.Host by
// sending requests to the server, and forwards the server's events to a
// corkboard.Deliverer, normally the board's Bridge.
//
// Requests never block: when the queue is full the request is dropped and
// logged.
type Client struct {
	conn *websocket.Conn
	sink corkboard.Deliverer
	log  *slog.Logger

	out       chan Envelope
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Dial connects to a hostlink server at url (ws:// or wss://, including
// Path).
func Dial(ctx context.Context, url string, sink corkboard.Deliverer, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge %s: %w", url, err)
	}
	c := &Client{
		conn: conn,
		sink: sink,
		log:  log,
		out:  make(chan Envelope, sendQueue),
		done: make(chan struct{}),
	}
	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

// Paste implements corkboard.Host.
func (c *Client) Paste() { c.send(corkboard.ChannelPaste) }

// ShowContextMenu implements corkboard.Host.
func (c *Client) ShowContextMenu() { c.send(corkboard.ChannelContextMenu) }

// RecordWindowSize implements corkboard.Host.
func (c *Client) RecordWindowSize(width, height int) {
	c.send(corkboard.ChannelWindowSize, width, height)
}

// MoveWindow implements corkboard.Host.
func (c *Client) MoveWindow(screenX, screenY int, origin corkboard.Vec2) {
	c.send(corkboard.ChannelMoveWindow, screenX, screenY, origin)
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) send(channel string, args ...any) {
	env, err := NewEnvelope(channel, args...)
	if err != nil {
		c.log.Error("encode bridge request", "channel", channel, "err", err)
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.out <- env:
	default:
		c.log.Warn("bridge send queue full, dropping request", "channel", channel)
	}
}

func (c *Client) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case env := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				c.log.Warn("bridge write", "channel", env.Channel, "err", err)
				c.shutdown()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			select {
			case <-c.done:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.log.Warn("bridge read", "err", err)
				}
			}
			c.shutdown()
			return
		}
		payload, err := eventPayload(env)
		if err == nil {
			err = c.sink.Deliver(env.Channel, payload)
		}
		if err != nil {
			c.log.Warn("bridge event", "channel", env.Channel, "err", err)
		}
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Close says goodbye to the server, closes the connection and waits for the
// reader and writer to exit or ctx to end.
func (c *Client) Close(ctx context.Context) error {
	var err error
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		close(c.done)
		err = c.conn.Close()
	})

	finished := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
