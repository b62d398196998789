// Package rigging is a transport-selecting dial layer for HTTP-style
// clients. It extends standard URLs with an explicit transport marker:
//
//	http::unix///tmp/app.sock/api/data    unix socket (absolute path)
//	http::unix//var/run/app.sock          unix socket (relative path)
//	http::tcp//localhost:8080             explicit tcp
//	http::tor//example.onion              tor network
//
// Plain URLs imply tcp, or tor when the host ends in ".onion". Parsing
// yields a [URL] carrying both the logical request target and the routing
// data; a [CoreDialer] resolves it to a dialed, transport-tagged [Conn]
// that plugs into any HTTP engine's connection layer.
package rigging

import (
	"github.com/rigging-net/rigging/internal/connector"
	"github.com/rigging-net/rigging/internal/transport"
	"github.com/rigging-net/rigging/internal/transporturl"
)

type Transport = transport.Transport

const (
	Tcp       = transport.Tcp
	Unix      = transport.Unix
	NamedPipe = transport.NamedPipe
	Tor       = transport.Tor
	Ssh       = transport.Ssh
	Quic      = transport.Quic
)

// TransportChain describes multi-hop routing intent, outermost hop first.
type TransportChain = transport.Chain

type Error = transport.Error
type ErrorKind = transport.ErrorKind

const (
	KindInvalidTransport   = transport.KindInvalidTransport
	KindInvalidURL         = transport.KindInvalidURL
	KindConnectionFailed   = transport.KindConnectionFailed
	KindNotAvailable       = transport.KindNotAvailable
	KindIo                 = transport.KindIo
	KindSocketPathNotFound = transport.KindSocketPathNotFound
	KindNamedPipeNotFound  = transport.KindNamedPipeNotFound
	KindTorNotAvailable    = transport.KindTorNotAvailable
)

// URL is a parsed dialect URL.
type URL = transporturl.URL

// Conn is a dialed byte stream tagged with its transport.
type Conn = connector.Conn

// SocketMapping resolves hostnames to unix socket paths.
type SocketMapping = connector.SocketMapping

// Parse parses a dialect URL string.
func Parse(raw string) (*URL, error) {
	return transporturl.Parse(raw)
}

// ParseTransport resolves a transport token through the alias table.
func ParseTransport(s string) (Transport, bool) {
	return transport.Parse(s)
}

// ParseChain parses a "+"-joined transport chain like "tor+unix".
func ParseChain(s string) (TransportChain, error) {
	return transport.ParseChain(s)
}

// ParseSocketMapping parses the flat "host1:/path1,host2:/path2" form.
func ParseSocketMapping(s string) *SocketMapping {
	return connector.ParseSocketMapping(s)
}

// IsKind reports whether err carries the given error kind.
func IsKind(err error, kind ErrorKind) bool {
	return transport.IsKind(err, kind)
}
