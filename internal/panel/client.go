// Package panel is the control-surface side of the protocol: it connects to
// the endpoint, waits for the greeting and sends one byte per event.
package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/keypanel/probe/internal/protocol"
)

// ErrBadGreeting is returned by Dial when the endpoint answers with
// something other than the greeting.
var ErrBadGreeting = errors.New("unexpected greeting")

// Sender is anything events can be pushed to.
type Sender interface {
	Send(ev protocol.Event) error
}

// Client is a connected panel. It is safe for concurrent use.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial connects to addr and waits for the greeting. A deadline on ctx
// bounds the wait.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	buf := make([]byte, len(protocol.Greeting))
	if _, err := io.ReadFull(conn, buf); err != nil {
		conn.Close()
		if ctx.Err() != nil {
			return nil, fmt.Errorf("await greeting: %w", ctx.Err())
		}
		return nil, fmt.Errorf("await greeting: %w", err)
	}
	if string(buf) != protocol.Greeting {
		conn.Close()
		return nil, fmt.Errorf("%w: %q", ErrBadGreeting, buf)
	}

	if !stop() {
		// ctx ended between the read and now; the conn is already closed.
		return nil, fmt.Errorf("await greeting: %w", ctx.Err())
	}
	conn.SetReadDeadline(time.Time{})
	return &Client{conn: conn}, nil
}

// Send encodes ev and writes it.
func (c *Client) Send(ev protocol.Event) error {
	b, err := protocol.Encode(ev)
	if err != nil {
		return err
	}
	return c.SendByte(b)
}

// SendByte writes a raw event byte, valid or not.
func (c *Client) SendByte(b byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.conn.Write([]byte{b}); err != nil {
		return fmt.Errorf("send 0x%02X: %w", b, err)
	}
	return nil
}

// RemoteAddr is the endpoint's address.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// LocalAddr is the address the endpoint reports this panel under.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Client) Close() error {
	return c.conn.Close()
}
