package ua

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf8"
)

// Encoder is a streaming little-endian binary writer for the OPC UA
// built-in type set. It never fails: callers accumulate bytes with
// chained calls and read out Bytes() once done, using an
// append-and-return-receiver pattern so call sites read as a flat
// chain instead of threading an error through every Write call.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with cap pre-allocated for hint bytes.
func NewEncoder(hint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, hint)}
}

// Bytes returns the accumulated wire bytes.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

func (e *Encoder) WriteByte(b byte) *Encoder {
	e.buf = append(e.buf, b)
	return e
}

func (e *Encoder) WriteBytes(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) WriteBool(v bool) *Encoder {
	if v {
		return e.WriteByte(1)
	}
	return e.WriteByte(0)
}

func (e *Encoder) WriteInt16(v int16) *Encoder  { return e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteUint16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}
func (e *Encoder) WriteInt32(v int32) *Encoder  { return e.WriteUint32(uint32(v)) }
func (e *Encoder) WriteUint32(v uint32) *Encoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}
func (e *Encoder) WriteInt64(v int64) *Encoder  { return e.WriteUint64(uint64(v)) }
func (e *Encoder) WriteUint64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) WriteFloat32(v float32) *Encoder {
	return e.WriteUint32(math.Float32bits(v))
}

func (e *Encoder) WriteFloat64(v float64) *Encoder {
	return e.WriteUint64(math.Float64bits(v))
}

// WriteString writes a length-prefixed UTF-8 string. A nil-valued
// string and an empty string are distinct on the wire: NullString()
// writes the -1 sentinel, an empty non-null string writes length 0.
func (e *Encoder) WriteString(s String) *Encoder {
	if s.Null {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(s.Value)))
	return e.WriteBytes([]byte(s.Value))
}

// WriteByteString writes a length-prefixed opaque byte string; nil
// slice encodes the -1 null sentinel, a non-nil empty slice encodes 0.
func (e *Encoder) WriteByteString(b []byte) *Encoder {
	if b == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(b)))
	return e.WriteBytes(b)
}

// WriteDateTime writes t as a 64-bit count of 100ns intervals since
// 1601-01-01 UTC, clamping to the documented sentinels.
func (e *Encoder) WriteDateTime(t time.Time) *Encoder {
	return e.WriteInt64(timeToFiletime(t))
}

var epoch1601 = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

const filetimeUnixOffset = 11644473600 // seconds from 1601-01-01 to 1970-01-01 UTC

func timeToFiletime(t time.Time) int64 {
	if t.IsZero() || t.Before(epoch1601) {
		return 0
	}
	if !t.Before(maxDateTime) {
		return math.MaxInt64
	}
	ticks := (t.Unix()+filetimeUnixOffset)*10_000_000 + int64(t.Nanosecond())/100
	if ticks < 0 {
		return 0
	}
	const maxTicks = int64(1<<63 - 1)
	if ticks > maxTicks {
		return maxTicks
	}
	return ticks
}

func filetimeToTime(v int64) time.Time {
	if v == math.MaxInt64 {
		return maxDateTime
	}
	if v <= 0 {
		return time.Time{} // minimum sentinel
	}
	return time.Unix(v/10_000_000-filetimeUnixOffset, (v%10_000_000)*100).UTC()
}

// maxDateTime is the sentinel returned when decoding the maximum
// 64-bit value.
var maxDateTime = time.Unix(math.MaxInt64/10_000_000-filetimeUnixOffset, (math.MaxInt64%10_000_000)*100).UTC()

// Decoder is a streaming little-endian binary reader. It consumes
// bytes by slicing the remaining tail on every read, and records the
// first error encountered so callers can chain decode calls and check
// Err() once at the end instead of threading an error return through
// every call.
type Decoder struct {
	b   []byte
	err error
}

// NewDecoder wraps b for sequential decoding. b is not copied.
func NewDecoder(b []byte) *Decoder { return &Decoder{b: b} }

// Err returns the first decode error encountered, if any.
func (d *Decoder) Err() error { return d.err }

// Len returns the number of unread bytes remaining.
func (d *Decoder) Len() int { return len(d.b) }

// Remaining returns the unread tail of the buffer.
func (d *Decoder) Remaining() []byte { return d.b }

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	if len(d.b) < n {
		d.fail(ErrTruncated)
		return make([]byte, n)
	}
	v := d.b[:n]
	d.b = d.b[n:]
	return v
}

func (d *Decoder) ReadByte() byte {
	return d.take(1)[0]
}

func (d *Decoder) ReadBool() bool {
	return d.ReadByte() != 0
}

func (d *Decoder) ReadInt16() int16   { return int16(d.ReadUint16()) }
func (d *Decoder) ReadUint16() uint16 { return binary.LittleEndian.Uint16(d.take(2)) }
func (d *Decoder) ReadInt32() int32   { return int32(d.ReadUint32()) }
func (d *Decoder) ReadUint32() uint32 { return binary.LittleEndian.Uint32(d.take(4)) }
func (d *Decoder) ReadInt64() int64   { return int64(d.ReadUint64()) }
func (d *Decoder) ReadUint64() uint64 { return binary.LittleEndian.Uint64(d.take(8)) }

func (d *Decoder) ReadFloat32() float32 {
	return math.Float32frombits(d.ReadUint32())
}

func (d *Decoder) ReadFloat64() float64 {
	return math.Float64frombits(d.ReadUint64())
}

// ReadString reads a length-prefixed UTF-8 string. Malformed UTF-8 is
// never fatal: invalid bytes are replaced with U+FFFD, one
// replacement per invalid byte, and decoding continues.
func (d *Decoder) ReadString() String {
	n := d.ReadInt32()
	if n < 0 {
		return NullString()
	}
	raw := d.take(int(n))
	if utf8.Valid(raw) {
		return NewString(string(raw))
	}
	return NewString(sanitizeUTF8(raw))
}

func sanitizeUTF8(raw []byte) string {
	var out []rune
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		out = append(out, r)
		raw = raw[size:]
	}
	return string(out)
}

// ReadByteString reads a length-prefixed opaque byte string; -1
// decodes to nil, preserving the null/empty distinction.
func (d *Decoder) ReadByteString() []byte {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([]byte, n)
	copy(v, d.take(int(n)))
	return v
}

// ReadDateTime reads a 64-bit 100ns-tick count since 1601-01-01 UTC.
func (d *Decoder) ReadDateTime() time.Time {
	return filetimeToTime(d.ReadInt64())
}

func (d *Decoder) ReadBytes(n int) []byte {
	v := make([]byte, n)
	copy(v, d.take(n))
	return v
}
