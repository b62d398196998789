package netpool

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type conn struct {
	net.Conn
	isClosed atomic.Bool
	lastIdle time.Time
}

func (c *conn) Write(p []byte) (n int, err error) {
	n, err = c.Conn.Write(p)
	if err != nil {
		if err != io.EOF {
			logrus.Debugf("netpool: error on write. %v", err)
		}
		c.Close()
	}
	return
}

func (c *conn) Read(p []byte) (n int, err error) {
	n, err = c.Conn.Read(p)
	if err != nil {
		if err != io.EOF {
			logrus.Debugf("netpool: error on read. %v", err)
		}
		c.Close()
	}
	return
}

func (c *conn) Close() error {
	c.isClosed.Store(true)
	return c.Conn.Close()
}

// CloseWrite half-closes the socket and withdraws it from reuse. The read
// half stays open so a pending response can still be drained.
func (c *conn) CloseWrite() error {
	c.isClosed.Store(true)
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return c.Conn.Close()
}
