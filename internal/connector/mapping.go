package connector

import "strings"

// SocketMapping resolves hostnames to unix socket paths when the URL itself
// carries no explicit socket path. Explicit entries win; otherwise the
// default directory yields "<dir>/<host>.sock".
type SocketMapping struct {
	SocketDir string
	mappings  map[string]string
}

func NewSocketMapping() *SocketMapping {
	return &SocketMapping{mappings: map[string]string{}}
}

// WithSocketDir sets the default socket directory.
func (m *SocketMapping) WithSocketDir(dir string) *SocketMapping {
	m.SocketDir = dir
	return m
}

// Add maps a hostname to an explicit socket path.
func (m *SocketMapping) Add(host, path string) {
	if m.mappings == nil {
		m.mappings = map[string]string{}
	}
	m.mappings[host] = path
}

// Lookup resolves a hostname to a socket path. ok is false when neither an
// explicit entry nor a default directory applies.
func (m *SocketMapping) Lookup(host string) (path string, ok bool) {
	if m == nil {
		return "", false
	}
	if p, ok := m.mappings[host]; ok {
		return p, true
	}
	if m.SocketDir != "" {
		return m.SocketDir + "/" + host + ".sock", true
	}
	return "", false
}

// ParseSocketMapping parses the flat "host1:/path1,host2:/path2" form.
func ParseSocketMapping(s string) *SocketMapping {
	m := NewSocketMapping()
	for _, pair := range strings.Split(s, ",") {
		if host, path, ok := strings.Cut(pair, ":"); ok {
			m.Add(strings.TrimSpace(host), strings.TrimSpace(path))
		}
	}
	return m
}
