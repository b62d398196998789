package rigging

import (
	"github.com/rigging-net/rigging/internal/connector"
	"github.com/rigging-net/rigging/internal/dialer"
)

// Dialers resolve a parsed dialect URL to a dialed byte stream. Unlike
// [net/http.Transport], a Dialer holds no per-request state beyond its
// configuration and an optional connection pool, so it is safe to share
// across callers.
type Dialer = dialer.Dialer

// CoreDialer is the default [Dialer]: a registry of per-transport
// connector factories populated from its Config.
type CoreDialer = dialer.CoreDialer

// Config carries the dispatcher's knobs; see [DefaultConfig].
type Config = dialer.Config

// ChainBuilder accumulates a transport chain description and its config.
type ChainBuilder = dialer.ChainBuilder

// DefaultSocketDir is the default unix socket fallback directory.
const DefaultSocketDir = dialer.DefaultSocketDir

// DefaultCorsairSocket is the corsair daemon's default socket path.
const DefaultCorsairSocket = connector.DefaultCorsairSocket

func NewCoreDialer(cfg *Config) *CoreDialer {
	return dialer.NewCoreDialer(cfg)
}

func DefaultConfig() *Config {
	return dialer.DefaultConfig()
}

func NewChainBuilder() *ChainBuilder {
	return dialer.NewChainBuilder()
}
