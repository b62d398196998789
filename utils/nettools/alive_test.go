//go:build darwin || linux

package nettools

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tcpPair(t *testing.T) (client, server net.Conn) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	done := make(chan net.Conn, 1)
	go func() {
		c, _ := l.Accept()
		done <- c
	}()
	client, err = net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	server = <-done
	require.NotNil(t, server)
	return client, server
}

func TestAliveOnOpenConn(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()
	assert.True(t, Alive(client))
}

func TestAliveAfterPeerClose(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	server.Close()
	time.Sleep(50 * time.Millisecond)
	assert.False(t, Alive(client))
}

func TestAliveWithPendingBytes(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()
	_, err := server.Write([]byte("unexpected"))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.False(t, Alive(client))
}

func TestAliveUnprobeableConn(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	assert.True(t, Alive(a))
}
