package dialer

import "github.com/rigging-net/rigging/internal/transport"

// ChainBuilder accumulates a multi-hop routing description together with
// the config its hops would need. The chain it builds is descriptive:
// dialing still resolves a single transport per URL (see DESIGN.md).
type ChainBuilder struct {
	chain transport.Chain
	cfg   *Config
}

func NewChainBuilder() *ChainBuilder {
	return &ChainBuilder{cfg: DefaultConfig()}
}

// Add appends a hop to the chain.
func (b *ChainBuilder) Add(t transport.Transport) *ChainBuilder {
	b.chain = append(b.chain, t)
	return b
}

func (b *ChainBuilder) Tcp() *ChainBuilder {
	return b.Add(transport.Tcp)
}

func (b *ChainBuilder) Unix() *ChainBuilder {
	return b.Add(transport.Unix)
}

func (b *ChainBuilder) Tor() *ChainBuilder {
	return b.Add(transport.Tor)
}

// SocketDir sets the default unix socket directory.
func (b *ChainBuilder) SocketDir(dir string) *ChainBuilder {
	b.cfg.SocketDir = dir
	return b
}

// TorSocket sets the corsair daemon socket path.
func (b *ChainBuilder) TorSocket(path string) *ChainBuilder {
	b.cfg.TorSocket = path
	return b
}

// Build returns the described chain and the config for its hops.
func (b *ChainBuilder) Build() (transport.Chain, *Config) {
	return b.chain, b.cfg
}
