package rigging

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// HTTPTransport adapts a dialer into a [net/http] transport that routes by
// request authority: ".onion" hosts tunnel through tor, everything else
// dials tcp. A host:port authority cannot express a unix socket target;
// use [Client] for those.
func HTTPTransport(d *CoreDialer) *http.Transport {
	return &http.Transport{
		DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
			c, err := d.Connect(ctx, "http://"+addr)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// Client returns an [net/http.Client] whose every connection is dialed
// from the given dialect URL, regardless of the request authority. Send
// requests to the URL's logical host (localhost for local transports).
func Client(d *CoreDialer, rawURL string) (*http.Client, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				c, err := d.Dial(ctx, u)
				if err != nil {
					return nil, err
				}
				return c, nil
			},
		},
	}, nil
}

// H2Transport plugs the dialer into the golang.org/x/net HTTP/2 client
// engine, speaking cleartext h2 over whatever stream the URL resolves to.
func H2Transport(d *CoreDialer, rawURL string) (*http2.Transport, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &http2.Transport{
		AllowHTTP: true,
		DialTLSContext: func(ctx context.Context, _, _ string, _ *tls.Config) (net.Conn, error) {
			c, err := d.Dial(ctx, u)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}, nil
}
