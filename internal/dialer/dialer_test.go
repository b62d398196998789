package dialer

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigging-net/rigging/internal/connector"
	"github.com/rigging-net/rigging/internal/transport"
	"github.com/rigging-net/rigging/internal/transporturl"
)

func mustParse(t *testing.T, raw string) *transporturl.URL {
	t.Helper()
	u, err := transporturl.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestConnectorForUnixUsesEmbeddedPath(t *testing.T) {
	d := NewCoreDialer(DefaultConfig())
	c, err := d.ConnectorFor(mustParse(t, "http::unix///tmp/app.sock/api"))
	require.NoError(t, err)
	unix, ok := c.(connector.Unix)
	require.True(t, ok)
	assert.Equal(t, "/tmp/app.sock", unix.SocketPath)
}

func TestConnectorForTorUnconfigured(t *testing.T) {
	d := NewCoreDialer(&Config{SocketDir: DefaultSocketDir})
	_, err := d.ConnectorFor(mustParse(t, "http::tor//example.onion"))
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindTorNotAvailable))
}

func TestConnectorForUnimplementedTransports(t *testing.T) {
	d := NewCoreDialer(nil)
	for _, raw := range []string{
		"http::pipe//myapp",
		"http::ssh//bastion.example.com",
		"https::quic//example.com",
	} {
		_, err := d.ConnectorFor(mustParse(t, raw))
		require.Error(t, err, raw)
		assert.True(t, transport.IsKind(err, transport.KindNotAvailable), raw)
	}
}

func TestSocketPathResolution(t *testing.T) {
	mapping := connector.NewSocketMapping()
	mapping.Add("myapp", "/custom/my.sock")
	cfg := &Config{SocketDir: "/tmp/servo-sockets", Mapping: mapping}

	path, ok := cfg.socketPathFor("/explicit.sock", "myapp")
	require.True(t, ok)
	assert.Equal(t, "/explicit.sock", path)

	path, ok = cfg.socketPathFor("", "myapp")
	require.True(t, ok)
	assert.Equal(t, "/custom/my.sock", path)

	path, ok = cfg.socketPathFor("", "other")
	require.True(t, ok)
	assert.Equal(t, "/tmp/servo-sockets/other.sock", path)

	bare := &Config{}
	_, ok = bare.socketPathFor("", "other")
	assert.False(t, ok)
	_, ok = cfg.socketPathFor("", "")
	assert.False(t, ok)
}

func TestDialUnixEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.sock")
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer l.Close()
	go func() {
		c, err := l.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		buf := make([]byte, 4)
		if _, err := c.Read(buf); err == nil {
			c.Write(buf)
		}
	}()

	d := NewCoreDialer(nil)
	conn, err := d.Connect(context.Background(), "https::unix//"+path+"/api")
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, transport.Unix, conn.Transport())

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))
}

func TestDialTcpReusesPooledConnection(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	accepts := make(chan net.Conn, 4)
	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				return
			}
			accepts <- c
		}
	}()

	d := NewCoreDialer(nil)
	raw := "http://" + l.Addr().String() + "/"

	first, err := d.Connect(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, transport.Tcp, first.Transport())
	require.NoError(t, first.Close()) // back to the pool

	second, err := d.Connect(context.Background(), raw)
	require.NoError(t, err)
	defer second.Close()

	select {
	case <-accepts:
	case <-time.After(5 * time.Second):
		t.Fatal("no connection accepted")
	}
	select {
	case c := <-accepts:
		c.Close()
		t.Fatal("second dial should have reused the pooled connection")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDialTcpCloseWriteRetiresPooledConnection(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	accepts := make(chan net.Conn, 4)
	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				return
			}
			accepts <- c
		}
	}()

	d := NewCoreDialer(nil)
	raw := "http://" + l.Addr().String() + "/"

	first, err := d.Connect(context.Background(), raw)
	require.NoError(t, err)
	require.NoError(t, first.CloseWrite())
	require.NoError(t, first.Close())

	second, err := d.Connect(context.Background(), raw)
	require.NoError(t, err)
	defer second.Close()

	// the half-closed stream must not come back from the pool
	for i := 0; i < 2; i++ {
		select {
		case <-accepts:
		case <-time.After(5 * time.Second):
			t.Fatal("expected a fresh dial after CloseWrite")
		}
	}
}

func TestDialTorUnconfigured(t *testing.T) {
	d := NewCoreDialer(&Config{})
	_, err := d.Connect(context.Background(), "http::tor//example.onion")
	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindTorNotAvailable))
}

func TestConnectRejectsBadURLs(t *testing.T) {
	d := NewCoreDialer(nil)
	_, err := d.Connect(context.Background(), "http::warp//example.com")
	assert.True(t, transport.IsKind(err, transport.KindInvalidTransport))
	_, err = d.Connect(context.Background(), "")
	assert.True(t, transport.IsKind(err, transport.KindInvalidURL))
}

func TestCloneSharesNoConnections(t *testing.T) {
	d := NewCoreDialer(DefaultConfig())
	nd := d.Clone()
	require.NotNil(t, nd)
	assert.NotSame(t, d.Config, nd.Config)
	assert.Equal(t, d.Config.TorSocket, nd.Config.TorSocket)
	assert.Nil(t, nd.Unwrap())
}
