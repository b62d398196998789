package dialer

import (
	"context"
	"net"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/rigging-net/rigging/internal/connector"
	"github.com/rigging-net/rigging/internal/transport"
	"github.com/rigging-net/rigging/internal/transporturl"
	"github.com/rigging-net/rigging/utils/netpool"
)

// Dialers resolve a parsed dialect URL to a dialed, transport-tagged byte
// stream. An HTTP engine drives requests over the returned connection
// without caring which transport produced it.
type Dialer interface {
	Dial(ctx context.Context, u *transporturl.URL) (*connector.Conn, error)
	Unwrap() Dialer
}

// factory builds the connector for one parsed URL, or explains why the
// transport cannot serve it.
type factory func(u *transporturl.URL) (connector.Connector, error)

// CoreDialer is the default [Dialer]: a registry of connector factories
// keyed by transport, populated from its Config at construction. Absent
// entries yield a uniform NotAvailable error. All state is read-only after
// construction, so a CoreDialer is safe for concurrent use.
type CoreDialer struct {
	Config *Config

	registry map[transport.Transport]factory
	pool     *netpool.Group
}

// NewCoreDialer builds a dispatcher from cfg. A nil cfg means
// DefaultConfig.
func NewCoreDialer(cfg *Config) *CoreDialer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := &CoreDialer{
		Config: cfg,
		pool:   netpool.NewGroup(100, 80),
	}
	d.registry = map[transport.Transport]factory{
		transport.Tcp: func(*transporturl.URL) (connector.Connector, error) {
			return connector.TCP{}, nil
		},
		transport.Unix: func(u *transporturl.URL) (connector.Connector, error) {
			path, ok := cfg.socketPathFor(u.SocketPath(), u.Host())
			if !ok {
				return nil, transport.SocketPathNotFound()
			}
			return connector.Unix{SocketPath: path}, nil
		},
		transport.Tor: func(*transporturl.URL) (connector.Connector, error) {
			if cfg.TorSocket == "" {
				return nil, transport.TorNotAvailable(nil)
			}
			return connector.Tor{SocketPath: cfg.TorSocket}, nil
		},
	}
	return d
}

// ConnectorFor resolves the connector that would serve u, without dialing.
func (d *CoreDialer) ConnectorFor(u *transporturl.URL) (connector.Connector, error) {
	f, ok := d.registry[u.Transport()]
	if !ok {
		return nil, transport.NotAvailable(u.Transport().Name())
	}
	return f(u)
}

// Connect parses a dialect URL string and dials it.
func (d *CoreDialer) Connect(ctx context.Context, rawURL string) (*connector.Conn, error) {
	u, err := transporturl.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return d.Dial(ctx, u)
}

// Dial resolves the connector for u and dials, passing host and port for
// network transports. Plain TCP connections go through the pool; tunnelled
// and local streams are dialed fresh, since their usability depends on
// per-dial state the pool cannot see.
func (d *CoreDialer) Dial(ctx context.Context, u *transporturl.URL) (*connector.Conn, error) {
	c, err := d.ConnectorFor(u)
	if err != nil {
		return nil, err
	}
	host, port := u.Host(), u.PortOrDefault()
	logrus.Debugf("dialing %s://%s:%d over %s", u.Scheme(), host, port, u.Transport())

	if u.Transport() == transport.Tcp {
		key := net.JoinHostPort(host, strconv.Itoa(int(port)))
		pc, err := d.pool.Connect(ctx, key, func(ctx context.Context) (net.Conn, error) {
			return c.Dial(ctx, host, port)
		})
		if err != nil {
			return nil, err
		}
		return connector.Wrap(pc, u.Transport()), nil
	}

	raw, err := c.Dial(ctx, host, port)
	if err != nil {
		return nil, err
	}
	return connector.Wrap(raw, u.Transport()), nil
}

func (d *CoreDialer) Clone() *CoreDialer {
	nd := NewCoreDialer(d.Config.Clone())
	nd.pool = d.pool.NewEmpty()
	return nd
}

func (d *CoreDialer) Unwrap() Dialer {
	return nil
}
