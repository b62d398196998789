package dialer

import "github.com/rigging-net/rigging/internal/connector"

// DefaultSocketDir is where unix targets without an explicit socket path
// are resolved, as "<dir>/<host>.sock".
const DefaultSocketDir = "/tmp/servo-sockets"

// Config carries the dispatcher's knobs. It is read-only per dial; Clone
// before mutating a shared one. There is no ambient global configuration
// anywhere in this module.
type Config struct {
	// SocketDir is the default directory for unix socket fallback
	// resolution. Empty disables the fallback.
	SocketDir string
	// TorSocket is the corsair daemon socket path. Empty means tor is
	// not available.
	TorSocket string
	// Mapping optionally resolves hostnames to socket paths before the
	// SocketDir fallback applies.
	Mapping *connector.SocketMapping
}

// DefaultConfig enables unix fallback resolution under DefaultSocketDir
// and the corsair daemon at its default path.
func DefaultConfig() *Config {
	return &Config{
		SocketDir: DefaultSocketDir,
		TorSocket: connector.DefaultCorsairSocket,
	}
}

func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// socketPathFor resolves a unix dial target: the path embedded in the URL
// wins, then the mapping, then the default directory.
func (c *Config) socketPathFor(embedded, host string) (string, bool) {
	if embedded != "" {
		return embedded, true
	}
	if host == "" {
		return "", false
	}
	if p, ok := c.Mapping.Lookup(host); ok {
		return p, true
	}
	if c.SocketDir != "" {
		return c.SocketDir + "/" + host + ".sock", true
	}
	return "", false
}
