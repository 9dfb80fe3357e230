package ua

import (
	"github.com/google/uuid"
)

// Guid is a 128-bit UUID in the OPC UA mixed-endian wire layout: the
// first three fields (32/16/16 bit) are little-endian, the last two
// (two bytes + six bytes) are big-endian, matching companion standard
// Part 6, 5.1.3. google/uuid stores the RFC 4122 big-endian layout, so
// encode/decode here only need to byte-swap the first three fields.
type Guid uuid.UUID

// NewGuid generates a random (v4) Guid.
func NewGuid() Guid {
	return Guid(uuid.New())
}

func (g Guid) String() string { return uuid.UUID(g).String() }

// WriteGuid appends the mixed-endian wire encoding of g.
func (e *Encoder) WriteGuid(g Guid) *Encoder {
	b := g[:]
	e.WriteByte(b[3]).WriteByte(b[2]).WriteByte(b[1]).WriteByte(b[0])
	e.WriteByte(b[5]).WriteByte(b[4])
	e.WriteByte(b[7]).WriteByte(b[6])
	return e.WriteBytes(b[8:16])
}

// ReadGuid reads the mixed-endian wire encoding into a Guid.
func (d *Decoder) ReadGuid() Guid {
	var g Guid
	raw := d.take(16)
	g[0], g[1], g[2], g[3] = raw[3], raw[2], raw[1], raw[0]
	g[4], g[5] = raw[5], raw[4]
	g[6], g[7] = raw[7], raw[6]
	copy(g[8:16], raw[8:16])
	return g
}
