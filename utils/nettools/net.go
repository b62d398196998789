package nettools

import (
	"net"
	"syscall"
)

func rawConn(raw net.Conn) syscall.RawConn {
	if t, ok := raw.(interface{ NetConn() net.Conn }); ok {
		// *tls.Conn or a polyfilled TLS connection
		raw = t.NetConn()
	}
	if t, ok := raw.(interface{ Raw() net.Conn }); ok {
		raw = t.Raw()
	}
	if c, ok := raw.(syscall.Conn); ok {
		if rc, err := c.SyscallConn(); err == nil {
			return rc
		}
	}
	return nil
}
