package connector

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rigging-net/rigging/internal/transport"
)

// Tor tunnels through the local corsair daemon. Dialing connects the
// daemon's unix socket, performs the two-frame handshake, and then hands
// the same socket back as the raw relay stream.
type Tor struct {
	SocketPath string
}

func (t Tor) path() string {
	if t.SocketPath == "" {
		return DefaultCorsairSocket
	}
	return t.SocketPath
}

// Available is a cheap existence check on the daemon socket, not a live
// handshake. Callers needing certainty must attempt the full dial.
func (t Tor) Available() bool {
	_, err := os.Stat(t.path())
	return err == nil
}

func (t Tor) Dial(ctx context.Context, host string, port uint16) (net.Conn, error) {
	c, err := zeroDialer.DialContext(ctx, "unix", t.path())
	if err != nil {
		return nil, transport.TorNotAvailable(err)
	}
	if err := handshake(ctx, c, host, port); err != nil {
		// the socket is in an undefined state after a failed
		// handshake and must not be reused
		c.Close()
		return nil, err
	}
	logrus.Debugf("tor connection established to %s:%d", host, port)
	return c, nil
}

func handshake(ctx context.Context, c net.Conn, host string, port uint16) error {
	if deadline, ok := ctx.Deadline(); ok {
		c.SetDeadline(deadline)
		defer c.SetDeadline(time.Time{})
	}
	req := ConnectRequest{Host: host, Port: port}
	if err := writeFrame(c, req.encode()); err != nil {
		return err
	}
	body, err := readFrame(c)
	if err != nil {
		return err
	}
	resp, err := decodeConnectResponse(body)
	if err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return transport.ConnectionFailed(msg)
	}
	return nil
}
