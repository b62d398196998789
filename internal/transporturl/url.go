// Package transporturl parses the transport-selecting URL dialect.
//
// The dialect extends standard URLs with an explicit transport marker
// between the scheme and the authority:
//
//	http::unix///tmp/app.sock/api/data    unix socket, absolute path
//	http::unix//var/run/app.sock          unix socket, relative path
//	http::tcp//localhost:8080             explicit tcp
//	http::tor//example.onion              tor network
//
// Plain URLs parse as usual and imply tcp, or tor for ".onion" hosts.
package transporturl

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rigging-net/rigging/internal/transport"
)

// socket path markers, scanned in this order, each by first occurrence
var socketMarkers = []string{".sock", ".socket", ".sk"}

// URL is a parsed dialect URL. It carries both the standard URL fields of
// the logical request target and the routing data the dialer needs.
// A URL is immutable once parsed.
type URL struct {
	u              *url.URL
	transport      transport.Transport
	originalScheme string
	explicit       bool
	socketPath     string
	pipePath       string
}

// Parse parses a dialect URL string.
func Parse(raw string) (*URL, error) {
	if raw == "" {
		return nil, transport.InvalidURL("empty url")
	}
	if head, rest, found := strings.Cut(raw, "//"); found {
		if scheme, token, ok := strings.Cut(head, "::"); ok {
			t, known := transport.Parse(token)
			if !known {
				return nil, transport.InvalidTransport(token)
			}
			return parseWithTransport(scheme, t, rest)
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, transport.InvalidURL(err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, transport.InvalidURL(raw)
	}

	if err := checkPort(u); err != nil {
		return nil, err
	}

	t := transport.Tcp
	if strings.HasSuffix(u.Hostname(), ".onion") {
		t = transport.Tor
	}
	return &URL{
		u:              u,
		transport:      t,
		originalScheme: u.Scheme,
	}, nil
}

func parseWithTransport(scheme string, t transport.Transport, rest string) (*URL, error) {
	switch t {
	case transport.Unix:
		return parseUnix(scheme, rest)
	case transport.NamedPipe:
		return parseNamedPipe(scheme, rest)
	default:
		// tor, tcp, ssh and quic targets are a standard authority
		u, err := url.Parse(scheme + "://" + rest)
		if err != nil {
			return nil, transport.InvalidURL(err.Error())
		}
		if u.Host == "" {
			return nil, transport.InvalidURL(scheme + "://" + rest)
		}
		if err := checkPort(u); err != nil {
			return nil, err
		}
		return &URL{
			u:              u,
			transport:      t,
			originalScheme: scheme,
			explicit:       true,
		}, nil
	}
}

// parseUnix splits the remainder into a socket path and a logical request
// path. The remainder keeps whatever slashes it came with, so the
// three-slash absolute form ///tmp/app.sock stays "/tmp/app.sock" and the
// two-slash form //var/run/app.sock stays "var/run/app.sock".
func parseUnix(scheme, rest string) (*URL, error) {
	if rest == "" {
		return nil, transport.InvalidURL("empty unix socket path")
	}
	socketPath, logical := splitSocketPath(rest)

	effective := downgradeScheme(scheme)
	u, err := url.Parse(effective + "://localhost" + logical)
	if err != nil {
		return nil, transport.InvalidURL(err.Error())
	}
	return &URL{
		u:              u,
		transport:      transport.Unix,
		originalScheme: scheme,
		explicit:       true,
		socketPath:     socketPath,
	}, nil
}

// parseNamedPipe handles the windows pipe form, either a full
// \\.\pipe\name path or a short name expanded into one. The logical path
// splits at the first path segment boundary.
func parseNamedPipe(scheme, rest string) (*URL, error) {
	if rest == "" {
		return nil, transport.InvalidURL("empty pipe path")
	}
	pipePath := rest
	if !strings.HasPrefix(rest, `\\.\pipe\`) {
		name := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			name = rest[:idx]
		}
		pipePath = `\\.\pipe\` + name
	}

	logical := "/"
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		if !strings.HasPrefix(rest, `\\`) {
			logical = rest[idx:]
		} else if _, after, ok := strings.Cut(rest, "/"); ok {
			logical = "/" + after
		}
	}

	effective := downgradeScheme(scheme)
	u, err := url.Parse(effective + "://localhost" + logical)
	if err != nil {
		return nil, transport.InvalidURL(err.Error())
	}
	return &URL{
		u:              u,
		transport:      transport.NamedPipe,
		originalScheme: scheme,
		explicit:       true,
		pipePath:       pipePath,
	}, nil
}

// splitSocketPath separates the socket file from the logical request path.
// Everything up to and including the first matched marker is the socket
// path; absent a marker the whole remainder is the socket path.
func splitSocketPath(rest string) (socketPath, logical string) {
	for _, marker := range socketMarkers {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			continue
		}
		end := idx + len(marker)
		if end < len(rest) {
			return rest[:end], rest[end:]
		}
		return rest[:end], "/"
	}
	return rest, "/"
}

// checkPort rejects explicit ports that do not fit in 16 bits. url.Parse
// only checks that a port is numeric.
func checkPort(u *url.URL) error {
	p := u.Port()
	if p == "" {
		return nil
	}
	if _, err := strconv.ParseUint(p, 10, 16); err != nil {
		return transport.InvalidURL("port out of range: " + p)
	}
	return nil
}

// downgradeScheme drops transport encryption for local channels. The
// pre-downgrade scheme stays recoverable via OriginalScheme.
func downgradeScheme(scheme string) string {
	switch scheme {
	case "https":
		return "http"
	case "wss":
		return "ws"
	default:
		return scheme
	}
}

// Transport returns the resolved transport.
func (u *URL) Transport() transport.Transport {
	return u.transport
}

// Chain returns the routing chain the URL resolves to. A dialect URL
// carries exactly one transport, so the chain is always single-hop.
func (u *URL) Chain() transport.Chain {
	return transport.Single(u.transport)
}

// Explicit reports whether the input carried a ::transport marker.
func (u *URL) Explicit() bool {
	return u.explicit
}

// URL returns the normalized inner URL. For local transports the host is
// the synthetic "localhost"; the real target is SocketPath or PipePath.
func (u *URL) URL() *url.URL {
	return u.u
}

// Scheme returns the normalized scheme, after any local downgrade.
func (u *URL) Scheme() string {
	return u.u.Scheme
}

// OriginalScheme returns the scheme as written, before any downgrade.
func (u *URL) OriginalScheme() string {
	return u.originalScheme
}

// Host returns the hostname without port.
func (u *URL) Host() string {
	return u.u.Hostname()
}

// Port returns the explicit port, or ok=false when the URL has none.
func (u *URL) Port() (port uint16, ok bool) {
	p := u.u.Port()
	if p == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// PortOrDefault returns the explicit port, or the scheme default:
// 443 for https/wss, 80 otherwise.
func (u *URL) PortOrDefault() uint16 {
	if p, ok := u.Port(); ok {
		return p
	}
	switch u.u.Scheme {
	case "https", "wss":
		return 443
	default:
		return 80
	}
}

// Path returns the logical request path, "/" if empty.
func (u *URL) Path() string {
	if u.u.Path == "" {
		return "/"
	}
	return u.u.Path
}

// SocketPath returns the unix socket path, empty when not a unix target.
func (u *URL) SocketPath() string {
	return u.socketPath
}

// PipePath returns the named pipe path, empty when not a pipe target.
func (u *URL) PipePath() string {
	return u.pipePath
}

// IsLocal reports whether the resolved transport never leaves the machine.
func (u *URL) IsLocal() bool {
	return u.transport.IsLocal()
}

// RequiresTor reports whether the target needs an anonymizing transport,
// either explicitly or because the host is a ".onion" address.
func (u *URL) RequiresTor() bool {
	return u.transport == transport.Tor || strings.HasSuffix(u.u.Hostname(), ".onion")
}

// String reconstructs the dialect form best-effort; an exact byte-for-byte
// round-trip of the input is not guaranteed.
func (u *URL) String() string {
	if !u.explicit {
		return u.u.String()
	}
	switch u.transport {
	case transport.Unix:
		if u.socketPath != "" {
			return u.originalScheme + "::unix//" + u.socketPath + u.u.Path
		}
	case transport.NamedPipe:
		if u.pipePath != "" {
			return u.originalScheme + "::pipe//" + u.pipePath + u.u.Path
		}
	default:
		s := u.u.String()
		return u.originalScheme + "::" + u.transport.Name() + "//" + strings.TrimPrefix(s, u.u.Scheme+"://")
	}
	return u.u.String()
}
