package uacp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rob-gra/go-opcua/ua"
)

// Frame is one decoded chunk off the wire: its type, chunk indicator,
// and body bytes (header stripped, still possibly secured for
// OPN/MSG/CLO — uasc is responsible for verifying/decrypting it).
type Frame struct {
	Type  MessageType
	Chunk ChunkType
	Body  []byte
}

// WriteFrame writes a single chunk: MessageType[3] ChunkType[1]
// MessageSize[u32 LE] body.
func WriteFrame(w io.Writer, typ MessageType, chunk ChunkType, body []byte) error {
	if len(typ) != 3 {
		return fmt.Errorf("uacp: message type %q is not 3 characters", typ)
	}
	header := make([]byte, HeaderSize)
	copy(header[0:3], typ)
	header[3] = byte(chunk)
	binary.LittleEndian.PutUint32(header[4:8], uint32(HeaderSize+len(body)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// ReadFrame reads and validates one chunk's header, then its body.
// maxMessageSize, when non-zero, bounds the declared frame size.
func ReadFrame(r io.Reader, maxMessageSize uint32) (Frame, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return Frame{}, err
	}
	typ := MessageType(header[0:3])
	chunk := ChunkType(header[3])
	size := binary.LittleEndian.Uint32(header[4:8])
	if size < HeaderSize {
		return Frame{}, fmt.Errorf("uacp: frame size %d smaller than header", size)
	}
	if maxMessageSize != 0 && size > maxMessageSize {
		return Frame{}, fmt.Errorf("uacp: frame size %d exceeds negotiated max %d", size, maxMessageSize)
	}
	body := make([]byte, size-HeaderSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return Frame{}, err
	}
	return Frame{Type: typ, Chunk: chunk, Body: body}, nil
}

// Conn is a framed TCP transport connection: it owns the handshake
// result (Limits) and serializes outbound chunk writes, wrapping
// net.Conn in a thin struct plus a write mutex rather than a generic
// io.ReadWriter abstraction.
type Conn struct {
	nc     net.Conn
	Limits Limits

	wmu sync.Mutex
}

// Dial opens a TCP connection to addr and performs the Hello/
// Acknowledge handshake against endpointURL, negotiating Limits from
// local and the server's Acknowledge.
func Dial(ctx context.Context, addr, endpointURL string, local Hello) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c := &Conn{nc: nc}
	if deadline, ok := ctx.Deadline(); ok {
		_ = nc.SetDeadline(deadline)
	}
	local.EndpointURL = endpointURL
	if local.ProtocolVersion == 0 {
		local.ProtocolVersion = DefaultProtocolVersion
	}

	e := ua.NewEncoder(64 + len(endpointURL))
	local.Encode(e)
	if err := WriteFrame(nc, MessageTypeHello, ChunkFinal, e.Bytes()); err != nil {
		nc.Close()
		return nil, err
	}

	f, err := ReadFrame(nc, 0)
	if err != nil {
		nc.Close()
		return nil, err
	}
	switch f.Type {
	case MessageTypeAcknowledge:
		d := ua.NewDecoder(f.Body)
		var ack Acknowledge
		ack.Decode(d)
		if d.Err() != nil {
			nc.Close()
			return nil, d.Err()
		}
		c.Limits = NegotiateLimits(local, ack)
	case MessageTypeError:
		d := ua.NewDecoder(f.Body)
		var em ErrorMessage
		em.Decode(d)
		nc.Close()
		return nil, &ua.StatusError{Code: em.Error, Op: "uacp.Dial: " + em.Reason}
	default:
		nc.Close()
		return nil, fmt.Errorf("uacp: unexpected message type %q during handshake", f.Type)
	}
	_ = nc.SetDeadline(time.Time{})
	return c, nil
}

// WriteChunk writes one chunk, serialized against concurrent writers
// (the conversation layer may flush chunks for OPN/CLO from a
// different goroutine than the steady-state MSG send path).
func (c *Conn) WriteChunk(typ MessageType, chunk ChunkType, body []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return WriteFrame(c.nc, typ, chunk, body)
}

// ReadChunk reads the next chunk. Callers (uasc) serialize their own
// reads; a Conn has exactly one reader at a time by construction.
func (c *Conn) ReadChunk() (Frame, error) {
	return ReadFrame(c.nc, c.Limits.MaxMessageSize)
}

// Close closes the underlying TCP connection.
func (c *Conn) Close() error { return c.nc.Close() }

// SetDeadline forwards to the underlying net.Conn, letting the
// conversation layer bound a read against an idle/keepalive timeout.
func (c *Conn) SetDeadline(t time.Time) error { return c.nc.SetDeadline(t) }
