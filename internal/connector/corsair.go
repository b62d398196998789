package connector

import (
	"encoding/binary"
	"io"

	"github.com/rigging-net/rigging/internal/transport"
)

// The corsair daemon speaks a private length-prefixed binary protocol over
// its unix socket. Each frame is a 4-byte big-endian length followed by
// that many body bytes. Bodies use the daemon's fixed layout: strings are a
// u64 little-endian byte count plus raw bytes, ports are u16 little-endian,
// bools are one byte, optional values are a one-byte tag (0 absent,
// 1 present) plus the value.

// DefaultCorsairSocket is where the daemon listens unless configured
// otherwise.
const DefaultCorsairSocket = "/tmp/servo-sockets/corsair.sock"

// maxFrameSize caps a declared response length. A frame above this is
// rejected before its body is read, so a hostile or corrupted daemon cannot
// keep the handshake reading forever.
const maxFrameSize = 1 << 20

// ConnectRequest asks the daemon to open a tunnel to host:port. It exists
// only for the duration of one handshake.
type ConnectRequest struct {
	Host string
	Port uint16
}

// ConnectResponse is the daemon's verdict. Error is empty when the daemon
// sent no message.
type ConnectResponse struct {
	Success bool
	Error   string
}

func (r ConnectRequest) encode() []byte {
	buf := make([]byte, 0, 8+len(r.Host)+2)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(r.Host)))
	buf = append(buf, r.Host...)
	buf = binary.LittleEndian.AppendUint16(buf, r.Port)
	return buf
}

func decodeConnectRequest(b []byte) (ConnectRequest, error) {
	if len(b) < 8 {
		return ConnectRequest{}, transport.ConnectionFailed("truncated request")
	}
	n := binary.LittleEndian.Uint64(b)
	b = b[8:]
	if uint64(len(b)) < n+2 {
		return ConnectRequest{}, transport.ConnectionFailed("truncated request")
	}
	return ConnectRequest{
		Host: string(b[:n]),
		Port: binary.LittleEndian.Uint16(b[n:]),
	}, nil
}

func (r ConnectResponse) encode() []byte {
	buf := make([]byte, 0, 2+8+len(r.Error))
	if r.Success {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	if r.Error == "" {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(r.Error)))
	return append(buf, r.Error...)
}

func decodeConnectResponse(b []byte) (ConnectResponse, error) {
	if len(b) < 2 {
		return ConnectResponse{}, transport.ConnectionFailed("truncated response")
	}
	resp := ConnectResponse{Success: b[0] != 0}
	if b[1] == 0 {
		return resp, nil
	}
	b = b[2:]
	if len(b) < 8 {
		return ConnectResponse{}, transport.ConnectionFailed("truncated response")
	}
	n := binary.LittleEndian.Uint64(b)
	b = b[8:]
	if uint64(len(b)) < n {
		return ConnectResponse{}, transport.ConnectionFailed("truncated response")
	}
	resp.Error = string(b[:n])
	return resp, nil
}

func writeFrame(w io.Writer, body []byte) error {
	var head [4]byte
	binary.BigEndian.PutUint32(head[:], uint32(len(body)))
	if _, err := w.Write(head[:]); err != nil {
		return transport.IoError(err)
	}
	if _, err := w.Write(body); err != nil {
		return transport.IoError(err)
	}
	return nil
}

func readFrame(r io.Reader) ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, transport.IoError(err)
	}
	n := binary.BigEndian.Uint32(head[:])
	if n > maxFrameSize {
		return nil, transport.ConnectionFailed("response too large")
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, transport.IoError(err)
	}
	return body, nil
}
