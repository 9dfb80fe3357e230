// Package uacp implements the OPC UA TCP transport: the Hello/
// Acknowledge handshake and the 8-byte chunk framing every later
// secure-conversation message rides on.
package uacp

import (
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
)

// MessageType is the 3-character ASCII tag that opens every frame.
type MessageType string

const (
	MessageTypeHello       MessageType = "HEL"
	MessageTypeAcknowledge MessageType = "ACK"
	MessageTypeOpen        MessageType = "OPN"
	MessageTypeClose       MessageType = "CLO"
	MessageTypeMessage     MessageType = "MSG"
	MessageTypeError       MessageType = "ERR"
	MessageTypeReverseHello MessageType = "RHE"
)

// ChunkType is the 1-byte indicator following MessageType.
type ChunkType byte

const (
	ChunkFinal        ChunkType = 'F'
	ChunkContinuation ChunkType = 'C'
	ChunkAbort        ChunkType = 'A'
)

func (c ChunkType) String() string {
	switch c {
	case ChunkFinal:
		return "final"
	case ChunkContinuation:
		return "continuation"
	case ChunkAbort:
		return "abort"
	default:
		return fmt.Sprintf("ChunkType(%q)", byte(c))
	}
}

// HeaderSize is the fixed length of MessageType+ChunkType+MessageSize,
// included in MessageSize itself.
const HeaderSize = 8

// DefaultProtocolVersion is the only transport protocol version this
// client speaks.
const DefaultProtocolVersion uint32 = 0

// Hello is sent once by the client after connecting, declaring the
// buffer limits it will honor.
type Hello struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
	EndpointURL       string
}

func (h *Hello) Encode(e *ua.Encoder) {
	e.WriteUint32(h.ProtocolVersion)
	e.WriteUint32(h.ReceiveBufferSize)
	e.WriteUint32(h.SendBufferSize)
	e.WriteUint32(h.MaxMessageSize)
	e.WriteUint32(h.MaxChunkCount)
	e.WriteString(ua.NewString(h.EndpointURL))
}

func (h *Hello) Decode(d *ua.Decoder) {
	h.ProtocolVersion = d.ReadUint32()
	h.ReceiveBufferSize = d.ReadUint32()
	h.SendBufferSize = d.ReadUint32()
	h.MaxMessageSize = d.ReadUint32()
	h.MaxChunkCount = d.ReadUint32()
	h.EndpointURL = d.ReadString().String()
}

// ReverseHello is sent by a server-initiated ("reverse connect")
// client listener instead of the client's own Hello. Not exercised by
// Client.Connect's forward-connect path but kept for servers that only
// support reverse connect (see Non-goals: implemented as a message
// type, no listener is provided).
type ReverseHello struct {
	ServerURI   string
	EndpointURL string
}

func (r *ReverseHello) Encode(e *ua.Encoder) {
	e.WriteString(ua.NewString(r.ServerURI))
	e.WriteString(ua.NewString(r.EndpointURL))
}

func (r *ReverseHello) Decode(d *ua.Decoder) {
	r.ServerURI = d.ReadString().String()
	r.EndpointURL = d.ReadString().String()
}

// Acknowledge is the server's Hello reply. Effective limits are the
// element-wise minimum of Hello and Acknowledge.
type Acknowledge struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
}

func (a *Acknowledge) Encode(e *ua.Encoder) {
	e.WriteUint32(a.ProtocolVersion)
	e.WriteUint32(a.ReceiveBufferSize)
	e.WriteUint32(a.SendBufferSize)
	e.WriteUint32(a.MaxMessageSize)
	e.WriteUint32(a.MaxChunkCount)
}

func (a *Acknowledge) Decode(d *ua.Decoder) {
	a.ProtocolVersion = d.ReadUint32()
	a.ReceiveBufferSize = d.ReadUint32()
	a.SendBufferSize = d.ReadUint32()
	a.MaxMessageSize = d.ReadUint32()
	a.MaxChunkCount = d.ReadUint32()
}

// ErrorMessage is sent in place of Acknowledge, or at any later point,
// when the peer is aborting the transport connection.
type ErrorMessage struct {
	Error  ua.StatusCode
	Reason string
}

func (m *ErrorMessage) Encode(e *ua.Encoder) {
	e.WriteStatusCode(m.Error)
	e.WriteString(ua.NewString(m.Reason))
}

func (m *ErrorMessage) Decode(d *ua.Decoder) {
	m.Error = d.ReadStatusCode()
	m.Reason = d.ReadString().String()
}

// Limits is the effective, already-negotiated set of transport
// buffer/chunk-count limits a Conn enforces once the handshake
// completes.
type Limits struct {
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
}

func min32(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// NegotiateLimits takes the element-wise minimum of the client's Hello
// and the server's Acknowledge. A zero value
// on either side means "no limit" and defers to the other side.
func NegotiateLimits(hello Hello, ack Acknowledge) Limits {
	return Limits{
		ReceiveBufferSize: min32(hello.ReceiveBufferSize, ack.SendBufferSize),
		SendBufferSize:    min32(hello.SendBufferSize, ack.ReceiveBufferSize),
		MaxMessageSize:    min32(hello.MaxMessageSize, ack.MaxMessageSize),
		MaxChunkCount:     min32(hello.MaxChunkCount, ack.MaxChunkCount),
	}
}
