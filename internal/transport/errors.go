package transport

import "fmt"

// ErrorKind discriminates transport failures. Callers branch on kinds via
// [Kind] or [errors.As]; messages are for humans only.
type ErrorKind uint8

const (
	KindInvalidTransport ErrorKind = iota
	KindInvalidURL
	KindConnectionFailed
	KindNotAvailable
	KindIo
	KindSocketPathNotFound
	KindNamedPipeNotFound
	KindTorNotAvailable
)

// Error is the error type returned by every operation in this module.
// Nothing in this layer retries; an Error is always final for the dial
// that produced it.
type Error struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidTransport:
		return "invalid transport: " + e.Detail
	case KindInvalidURL:
		return "invalid url: " + e.Detail
	case KindConnectionFailed:
		return "connection failed: " + e.Detail
	case KindNotAvailable:
		return "transport not available: " + e.Detail
	case KindIo:
		return fmt.Sprintf("io error: %v", e.Cause)
	case KindSocketPathNotFound:
		return "socket path not found"
	case KindNamedPipeNotFound:
		return "named pipe not found: " + e.Detail
	case KindTorNotAvailable:
		return "tor daemon not available"
	default:
		return "transport error: " + e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the ErrorKind of err if it is (or wraps) an *Error.
func Kind(err error) (ErrorKind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := Kind(err)
	return ok && k == kind
}

// InvalidTransport marks an unrecognized transport token.
func InvalidTransport(token string) *Error {
	return &Error{Kind: KindInvalidTransport, Detail: token}
}

// InvalidURL marks malformed or empty input.
func InvalidURL(detail string) *Error {
	return &Error{Kind: KindInvalidURL, Detail: detail}
}

// ConnectionFailed marks a daemon-reported failure, an oversized response,
// or a decode error.
func ConnectionFailed(detail string) *Error {
	return &Error{Kind: KindConnectionFailed, Detail: detail}
}

// NotAvailable marks a transport that is not configured or not implemented.
func NotAvailable(feature string) *Error {
	return &Error{Kind: KindNotAvailable, Detail: feature}
}

// IoError passes a raw OS-level failure through untranslated.
func IoError(cause error) *Error {
	return &Error{Kind: KindIo, Cause: cause}
}

// SocketPathNotFound marks a unix target with no resolvable socket path.
func SocketPathNotFound() *Error {
	return &Error{Kind: KindSocketPathNotFound}
}

// NamedPipeNotFound is reserved for the windows named pipe connector.
func NamedPipeNotFound(path string) *Error {
	return &Error{Kind: KindNamedPipeNotFound, Detail: path}
}

// TorNotAvailable marks an unreachable or unconfigured daemon.
func TorNotAvailable(cause error) *Error {
	return &Error{Kind: KindTorNotAvailable, Cause: cause}
}
