package connector

import (
	"context"
	"encoding/binary"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigging-net/rigging/internal/transport"
)

func TestConnectRequestLayout(t *testing.T) {
	b := ConnectRequest{Host: "example.onion", Port: 443}.encode()
	require.Len(t, b, 8+13+2)
	assert.Equal(t, uint64(13), binary.LittleEndian.Uint64(b))
	assert.Equal(t, "example.onion", string(b[8:21]))
	assert.Equal(t, uint16(443), binary.LittleEndian.Uint16(b[21:]))

	back, err := decodeConnectRequest(b)
	require.NoError(t, err)
	assert.Equal(t, ConnectRequest{Host: "example.onion", Port: 443}, back)
}

func TestConnectResponseLayout(t *testing.T) {
	ok := ConnectResponse{Success: true}.encode()
	assert.Equal(t, []byte{1, 0}, ok)

	failed := ConnectResponse{Success: false, Error: "boom"}.encode()
	assert.Equal(t, []byte{0, 1, 4, 0, 0, 0, 0, 0, 0, 0, 'b', 'o', 'o', 'm'}, failed)

	for _, b := range [][]byte{ok, failed} {
		resp, err := decodeConnectResponse(b)
		require.NoError(t, err)
		assert.Equal(t, b[0] != 0, resp.Success)
	}

	_, err := decodeConnectResponse([]byte{1})
	assert.True(t, transport.IsKind(err, transport.KindConnectionFailed))
	_, err = decodeConnectResponse([]byte{0, 1, 9, 0, 0, 0, 0, 0, 0, 0, 'x'})
	assert.True(t, transport.IsKind(err, transport.KindConnectionFailed))
}

// daemon is a scripted corsair stand-in on a unix socket.
func daemon(t *testing.T, handle func(t *testing.T, c net.Conn)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corsair.sock")
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	go func() {
		c, err := l.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		handle(t, c)
	}()
	return path
}

func TestTorDialRelaysAfterHandshake(t *testing.T) {
	path := daemon(t, func(t *testing.T, c net.Conn) {
		body, err := readFrame(c)
		require.NoError(t, err)
		req, err := decodeConnectRequest(body)
		require.NoError(t, err)
		assert.Equal(t, ConnectRequest{Host: "example.com", Port: 80}, req)

		require.NoError(t, writeFrame(c, ConnectResponse{Success: true}.encode()))

		// past the handshake the socket is a raw relay
		buf := make([]byte, 4)
		if _, err := c.Read(buf); err == nil {
			c.Write(buf)
		}
	})

	conn, err := Tor{SocketPath: path}.Dial(context.Background(), "example.com", 80)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))
}

func TestTorDialDaemonRefusal(t *testing.T) {
	path := daemon(t, func(t *testing.T, c net.Conn) {
		if _, err := readFrame(c); err != nil {
			return
		}
		writeFrame(c, ConnectResponse{Success: false, Error: "boom"}.encode())
	})

	_, err := Tor{SocketPath: path}.Dial(context.Background(), "example.com", 80)
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindConnectionFailed))
	assert.Contains(t, err.Error(), "boom")
}

func TestTorDialDaemonRefusalWithoutMessage(t *testing.T) {
	path := daemon(t, func(t *testing.T, c net.Conn) {
		if _, err := readFrame(c); err != nil {
			return
		}
		writeFrame(c, ConnectResponse{Success: false}.encode())
	})

	_, err := Tor{SocketPath: path}.Dial(context.Background(), "example.com", 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error")
}

func TestTorDialOversizedResponse(t *testing.T) {
	done := make(chan struct{})
	path := daemon(t, func(t *testing.T, c net.Conn) {
		defer close(done)
		if _, err := readFrame(c); err != nil {
			return
		}
		// declare an absurd length and never send a body; the client
		// must abort instead of waiting for it
		var head [4]byte
		binary.BigEndian.PutUint32(head[:], 2<<20)
		c.Write(head[:])
		c.Read(make([]byte, 1)) // hold the socket open until the client gives up
	})

	_, err := Tor{SocketPath: path}.Dial(context.Background(), "example.com", 80)
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindConnectionFailed))
	assert.Contains(t, err.Error(), "response too large")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not observe the aborted handshake")
	}
}

func TestTorDialNoDaemon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.sock")
	_, err := Tor{SocketPath: path}.Dial(context.Background(), "example.com", 80)
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindTorNotAvailable))
}

func TestTorAvailableIsAStatProbe(t *testing.T) {
	missing := Tor{SocketPath: filepath.Join(t.TempDir(), "missing.sock")}
	assert.False(t, missing.Available())

	path := daemon(t, func(t *testing.T, c net.Conn) {})
	assert.True(t, Tor{SocketPath: path}.Available())
}
