package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentifierType discriminates which kind of identifier a NodeId
// carries on the wire and in its textual form.
type IdentifierType byte

const (
	IdentifierNumeric IdentifierType = iota
	IdentifierString
	IdentifierGUID
	IdentifierOpaque
)

// NodeId identifies a node in a server's address space: a 16-bit
// namespace index plus an identifier that is exactly one of numeric,
// string, GUID or opaque byte-string.
type NodeId struct {
	ns   uint16
	kind IdentifierType

	numeric uint32
	str     string
	guid    Guid
	opaque  []byte
}

// NewNumericNodeId builds a numeric NodeId in namespace ns.
func NewNumericNodeId(ns uint16, id uint32) NodeId {
	return NodeId{ns: ns, kind: IdentifierNumeric, numeric: id}
}

// NewStringNodeId builds a string NodeId in namespace ns.
func NewStringNodeId(ns uint16, id string) NodeId {
	return NodeId{ns: ns, kind: IdentifierString, str: id}
}

// NewGUIDNodeId builds a GUID NodeId in namespace ns.
func NewGUIDNodeId(ns uint16, id Guid) NodeId {
	return NodeId{ns: ns, kind: IdentifierGUID, guid: id}
}

// NewOpaqueNodeId builds an opaque byte-string NodeId in namespace ns.
func NewOpaqueNodeId(ns uint16, id []byte) NodeId {
	return NodeId{ns: ns, kind: IdentifierOpaque, opaque: id}
}

// NullNodeId is the numeric NodeId ns=0;i=0, the null node.
var NullNodeId = NewNumericNodeId(0, 0)

// Namespace returns the namespace index.
func (n NodeId) Namespace() uint16 { return n.ns }

// Type returns which identifier kind n carries.
func (n NodeId) Type() IdentifierType { return n.kind }

// IsNull reports whether n is the null node (ns=0;i=0).
func (n NodeId) IsNull() bool {
	return n.kind == IdentifierNumeric && n.ns == 0 && n.numeric == 0
}

// IntID returns the numeric identifier; only meaningful when Type()
// is IdentifierNumeric.
func (n NodeId) IntID() uint32 { return n.numeric }

// StringID returns the string identifier; only meaningful when Type()
// is IdentifierString.
func (n NodeId) StringID() string { return n.str }

// GUIDID returns the GUID identifier; only meaningful when Type() is
// IdentifierGUID.
func (n NodeId) GUIDID() Guid { return n.guid }

// OpaqueID returns the opaque identifier; only meaningful when Type()
// is IdentifierOpaque.
func (n NodeId) OpaqueID() []byte { return n.opaque }

// Equal reports structural equality between two NodeIds.
func (n NodeId) Equal(o NodeId) bool {
	if n.ns != o.ns || n.kind != o.kind {
		return false
	}
	switch n.kind {
	case IdentifierNumeric:
		return n.numeric == o.numeric
	case IdentifierString:
		return n.str == o.str
	case IdentifierGUID:
		return n.guid == o.guid
	case IdentifierOpaque:
		return string(n.opaque) == string(o.opaque)
	}
	return false
}

// String renders the textual form ns=<idx>;{i|s|g|b}=<value>, omitting
func (n NodeId) String() string {
	var prefix string
	if n.ns != 0 {
		prefix = "ns=" + strconv.Itoa(int(n.ns)) + ";"
	}
	switch n.kind {
	case IdentifierNumeric:
		return fmt.Sprintf("%si=%d", prefix, n.numeric)
	case IdentifierString:
		return fmt.Sprintf("%ss=%s", prefix, n.str)
	case IdentifierGUID:
		return fmt.Sprintf("%sg=%s", prefix, n.guid)
	case IdentifierOpaque:
		return fmt.Sprintf("%sb=%s", prefix, base64Encode(n.opaque))
	default:
		return prefix + "i=0"
	}
}

// ParseNodeId parses the textual form produced by String.
func ParseNodeId(s string) (NodeId, error) {
	var ns uint16
	rest := s
	if strings.HasPrefix(s, "ns=") {
		parts := strings.SplitN(s[3:], ";", 2)
		if len(parts) != 2 {
			return NodeId{}, fmt.Errorf("ua: malformed NodeId %q: missing identifier", s)
		}
		v, err := strconv.ParseUint(parts[0], 10, 16)
		if err != nil {
			return NodeId{}, fmt.Errorf("ua: malformed NodeId %q: %w", s, err)
		}
		ns = uint16(v)
		rest = parts[1]
	}
	if len(rest) < 2 || rest[1] != '=' {
		return NodeId{}, fmt.Errorf("ua: malformed NodeId %q: missing type prefix", s)
	}
	kind, value := rest[0], rest[2:]
	switch kind {
	case 'i':
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return NodeId{}, fmt.Errorf("ua: malformed numeric NodeId %q: %w", s, err)
		}
		return NewNumericNodeId(ns, uint32(v)), nil
	case 's':
		return NewStringNodeId(ns, value), nil
	case 'g':
		id, err := parseGuidString(value)
		if err != nil {
			return NodeId{}, fmt.Errorf("ua: malformed GUID NodeId %q: %w", s, err)
		}
		return NewGUIDNodeId(ns, id), nil
	case 'b':
		raw, err := base64Decode(value)
		if err != nil {
			return NodeId{}, fmt.Errorf("ua: malformed opaque NodeId %q: %w", s, err)
		}
		return NewOpaqueNodeId(ns, raw), nil
	default:
		return NodeId{}, fmt.Errorf("ua: malformed NodeId %q: unknown identifier type %q", s, kind)
	}
}

// NodeId format byte prefixes for the compact wire encoding.
// See companion standard Part 6, 5.2.2.9.
const (
	nodeIDFmtTwoByte   byte = 0x00
	nodeIDFmtFourByte  byte = 0x01
	nodeIDFmtNumeric   byte = 0x02
	nodeIDFmtString    byte = 0x03
	nodeIDFmtGUID      byte = 0x04
	nodeIDFmtOpaque    byte = 0x05
)

// WriteNodeId chooses the most compact wire representation that fits.
func (e *Encoder) WriteNodeId(n NodeId) *Encoder {
	switch n.kind {
	case IdentifierNumeric:
		switch {
		case n.ns == 0 && n.numeric <= 0xFF:
			e.WriteByte(nodeIDFmtTwoByte)
			return e.WriteByte(byte(n.numeric))
		case n.ns <= 0xFF && n.numeric <= 0xFFFF:
			e.WriteByte(nodeIDFmtFourByte)
			e.WriteByte(byte(n.ns))
			return e.WriteUint16(uint16(n.numeric))
		default:
			e.WriteByte(nodeIDFmtNumeric)
			e.WriteUint16(n.ns)
			return e.WriteUint32(n.numeric)
		}
	case IdentifierString:
		e.WriteByte(nodeIDFmtString)
		e.WriteUint16(n.ns)
		return e.WriteString(NewString(n.str))
	case IdentifierGUID:
		e.WriteByte(nodeIDFmtGUID)
		e.WriteUint16(n.ns)
		return e.WriteGuid(n.guid)
	case IdentifierOpaque:
		e.WriteByte(nodeIDFmtOpaque)
		e.WriteUint16(n.ns)
		return e.WriteByteString(n.opaque)
	default:
		return e.WriteByte(nodeIDFmtTwoByte).WriteByte(0)
	}
}

// ReadNodeId reads the format-prefixed compact NodeId encoding.
func (d *Decoder) ReadNodeId() NodeId {
	return d.readNodeIdBody(d.ReadByte())
}

// readNodeIdBody decodes the body of a NodeId given its already-read
// format byte. Shared with ReadExpandedNodeId, which must mask the
// namespace-URI/server-index presence bits out of the format byte
// before dispatching without mutating the underlying buffer.
func (d *Decoder) readNodeIdBody(format byte) NodeId {
	switch format {
	case nodeIDFmtTwoByte:
		return NewNumericNodeId(0, uint32(d.ReadByte()))
	case nodeIDFmtFourByte:
		ns := uint16(d.ReadByte())
		return NewNumericNodeId(ns, uint32(d.ReadUint16()))
	case nodeIDFmtNumeric:
		ns := d.ReadUint16()
		return NewNumericNodeId(ns, d.ReadUint32())
	case nodeIDFmtString:
		ns := d.ReadUint16()
		return NewStringNodeId(ns, d.ReadString().String())
	case nodeIDFmtGUID:
		ns := d.ReadUint16()
		return NewGUIDNodeId(ns, d.ReadGuid())
	case nodeIDFmtOpaque:
		ns := d.ReadUint16()
		return NewOpaqueNodeId(ns, d.ReadByteString())
	default:
		d.fail(ErrNodeIDInvalid)
		return NullNodeId
	}
}
