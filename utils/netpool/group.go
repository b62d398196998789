package netpool

import (
	"context"
	"net"
	"sync"
)

// Group keeps one pool per endpoint key.
type Group struct {
	sync.RWMutex
	pools map[string]*pool

	maxConnsPerKey, maxIdlePerKey uint
}

func NewGroup(maxConnsPerKey, maxIdlePerKey uint) *Group {
	return &Group{
		pools:          map[string]*pool{},
		maxConnsPerKey: maxConnsPerKey, maxIdlePerKey: maxIdlePerKey,
	}
}

// NewEmpty creates a fresh group with the same limits and no connections.
func (g *Group) NewEmpty() *Group {
	return NewGroup(g.maxConnsPerKey, g.maxIdlePerKey)
}

func (g *Group) Connect(ctx context.Context, key string, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	g.RLock()
	p, ok := g.pools[key]
	g.RUnlock()
	if ok {
		return p.connect(ctx, dial)
	}
	g.Lock()
	if p, ok = g.pools[key]; !ok {
		p = newPool(g.maxIdlePerKey, g.maxConnsPerKey)
		g.pools[key] = p
	}
	g.Unlock()
	return p.connect(ctx, dial)
}
