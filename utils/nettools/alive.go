//go:build darwin || linux

package nettools

import (
	"net"

	"golang.org/x/sys/unix"
)

// Alive reports whether an idle connection is still usable, by polling the
// socket without blocking. A readable or hung-up idle socket is considered
// dead: the peer either closed it or pushed bytes nobody asked for, and
// reusing it would corrupt the next exchange.
func Alive(c net.Conn) bool {
	rc := rawConn(c)
	if rc == nil {
		return true // can't probe, assume usable
	}
	alive := true
	err := rc.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 0)
		if err != nil {
			return
		}
		if n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			alive = false
		}
	})
	return err == nil && alive
}
