package connector

import (
	"context"
	"net"
	"strconv"

	"github.com/rigging-net/rigging/internal/transport"
)

var zeroDialer net.Dialer

// TCP dials host:port directly.
type TCP struct{}

func (TCP) Dial(ctx context.Context, host string, port uint16) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	c, err := zeroDialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, transport.IoError(err)
	}
	return c, nil
}
