package transport

import "strings"

// Transport identifies the low-level channel a connection is carried over.
// The zero value is Tcp.
type Transport uint8

const (
	// Tcp is a plain TCP/IP connection.
	Tcp Transport = iota
	// Unix is a unix domain socket.
	Unix
	// NamedPipe is a windows named pipe.
	NamedPipe
	// Tor tunnels through a local anonymizing daemon.
	Tor
	// Ssh is an ssh tunnel.
	Ssh
	// Quic is QUIC/HTTP3.
	Quic
)

// Parse resolves a transport token, case-insensitively, through the alias
// table. The second return reports whether the token was recognized.
func Parse(s string) (Transport, bool) {
	switch strings.ToLower(s) {
	case "tcp":
		return Tcp, true
	case "unix", "uds":
		return Unix, true
	case "pipe", "namedpipe":
		return NamedPipe, true
	case "tor", "onion":
		return Tor, true
	case "ssh":
		return Ssh, true
	case "quic", "http3":
		return Quic, true
	}
	return Tcp, false
}

// Name returns the canonical lowercase token for t.
func (t Transport) Name() string {
	switch t {
	case Unix:
		return "unix"
	case NamedPipe:
		return "pipe"
	case Tor:
		return "tor"
	case Ssh:
		return "ssh"
	case Quic:
		return "quic"
	default:
		return "tcp"
	}
}

// DisplayName returns a human readable name for t.
func (t Transport) DisplayName() string {
	switch t {
	case Unix:
		return "Unix Socket"
	case NamedPipe:
		return "Named Pipe"
	case Tor:
		return "Tor Network"
	case Ssh:
		return "SSH Tunnel"
	case Quic:
		return "QUIC/HTTP3"
	default:
		return "TCP/IP"
	}
}

// IsLocal reports whether t never leaves the machine.
func (t Transport) IsLocal() bool {
	return t == Unix || t == NamedPipe
}

// IsAnonymous reports whether t provides anonymity.
func (t Transport) IsAnonymous() bool {
	return t == Tor
}

func (t Transport) String() string {
	return t.Name()
}
