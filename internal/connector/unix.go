package connector

import (
	"context"
	"net"

	"github.com/rigging-net/rigging/internal/transport"
)

// Unix dials a fixed filesystem socket path. The host and port of the dial
// target are irrelevant for a local channel and are ignored.
type Unix struct {
	SocketPath string
}

func (u Unix) Dial(ctx context.Context, _ string, _ uint16) (net.Conn, error) {
	c, err := zeroDialer.DialContext(ctx, "unix", u.SocketPath)
	if err != nil {
		return nil, transport.IoError(err)
	}
	return c, nil
}
