// Package connector holds the per-transport dialers and the uniform
// connection value they produce.
package connector

import (
	"context"
	"net"

	"github.com/rigging-net/rigging/internal/transport"
)

// Connector dials one kind of transport. Local connectors carry their own
// pre-configured path and ignore the host and port arguments.
type Connector interface {
	Dial(ctx context.Context, host string, port uint16) (net.Conn, error)
}

// Conn is a dialed byte stream tagged with the transport that produced it.
// It satisfies net.Conn; callers needing transport-specific behavior
// discriminate on Transport. A Conn exclusively owns its underlying socket
// for its whole lifetime.
type Conn struct {
	net.Conn
	transport transport.Transport
}

// Wrap tags a dialed stream with its transport.
func Wrap(c net.Conn, t transport.Transport) *Conn {
	return &Conn{Conn: c, transport: t}
}

// Transport returns the transport this connection was dialed over.
func (c *Conn) Transport() transport.Transport {
	return c.transport
}

// Raw returns the underlying stream.
func (c *Conn) Raw() net.Conn {
	return c.Conn
}

// CloseWrite shuts down the write half when the underlying socket supports
// it, falling back to a full close. Wrappers are asked before what they
// wrap, so a pooling layer sees the half-close and can retire the stream.
func (c *Conn) CloseWrite() error {
	raw := c.Conn
	for {
		if cw, ok := raw.(interface{ CloseWrite() error }); ok {
			return cw.CloseWrite()
		}
		r, ok := raw.(interface{ Raw() net.Conn })
		if !ok {
			return c.Close()
		}
		raw = r.Raw()
	}
}
