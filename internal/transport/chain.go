package transport

import "strings"

// Chain is an ordered sequence of transports, outermost first. It describes
// multi-hop routing intent, e.g. [Tor, Unix] meaning "through tor, then to a
// unix socket". Dialing a chain hop-by-hop is not implemented; dialers act
// on a single resolved transport.
type Chain []Transport

// ParseChain parses a "+"-joined chain like "tor+unix". Any unrecognized
// segment fails the whole parse.
func ParseChain(s string) (Chain, error) {
	parts := strings.Split(s, "+")
	chain := make(Chain, 0, len(parts))
	for _, part := range parts {
		t, ok := Parse(strings.TrimSpace(part))
		if !ok {
			return nil, InvalidTransport(part)
		}
		chain = append(chain, t)
	}
	return chain, nil
}

// Single returns a chain of one transport.
func Single(t Transport) Chain {
	return Chain{t}
}

// First returns the outermost transport. ok is false on an empty chain.
func (c Chain) First() (t Transport, ok bool) {
	if len(c) == 0 {
		return Tcp, false
	}
	return c[0], true
}

// Last returns the innermost transport. ok is false on an empty chain.
func (c Chain) Last() (t Transport, ok bool) {
	if len(c) == 0 {
		return Tcp, false
	}
	return c[len(c)-1], true
}

func (c Chain) IsEmpty() bool {
	return len(c) == 0
}

func (c Chain) Len() int {
	return len(c)
}

func (c Chain) String() string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = t.Name()
	}
	return strings.Join(names, "+")
}
