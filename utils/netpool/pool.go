package netpool

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/rigging-net/rigging/utils/nettools"
)

// Conn is a pooled stream. Close returns it to the pool when it is still
// healthy; the pool closes it otherwise. Raw exposes the underlying socket
// for callers that need to reach the file descriptor.
type Conn interface {
	net.Conn
	Raw() net.Conn
}

// releaser hands a borrowed conn back to its pool instead of closing it.
// Only the first Close releases; a conn is borrowed at most once per ticket.
type releaser struct {
	p        *pool
	released atomic.Bool
	*conn
}

func (r *releaser) Close() error {
	if r.released.Swap(true) {
		return nil
	}
	r.p.release(r.conn)
	return nil
}

func (r *releaser) Raw() net.Conn {
	return r.conn.Conn
}

type pool struct {
	connTicket chan struct{}
	idleTicket chan *conn

	maxIdleDuration time.Duration
}

func newPool(maxIdle, maxConn uint) *pool {
	return &pool{
		connTicket: make(chan struct{}, maxConn),
		idleTicket: make(chan *conn, maxIdle),
	}
}

func (p *pool) connect(ctx context.Context, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	select {
	case p.connTicket <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	for {
		select {
		case c := <-p.idleTicket:
			if p.maxIdleDuration != 0 && time.Since(c.lastIdle) > p.maxIdleDuration {
				c.Close()
			} else if !c.isClosed.Load() && nettools.Alive(c.Conn) {
				return &releaser{p: p, conn: c}, nil
			}
		default:
			raw, err := dial(ctx)
			if err != nil {
				<-p.connTicket
				return nil, err
			}
			return &releaser{p: p, conn: &conn{Conn: raw}}, nil
		}
	}
}

func (p *pool) release(c *conn) {
	<-p.connTicket
	if c.isClosed.Load() {
		// fully close a conn that was only half-closed via CloseWrite
		c.Conn.Close()
		return
	}
	c.lastIdle = time.Now()
	select {
	case p.idleTicket <- c:
	default:
		c.Close()
	}
}
