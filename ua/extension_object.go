package ua

// ExtensionObjectBodyType tags which kind of body an ExtensionObject
// carries on the wire.
type ExtensionObjectBodyType byte

const (
	ExtensionObjectBodyNone       ExtensionObjectBodyType = 0
	ExtensionObjectBodyByteString ExtensionObjectBodyType = 1
	ExtensionObjectBodyXML        ExtensionObjectBodyType = 2
)

// ExtensionObject is a polymorphic container: an encoding-id
// ExpandedNodeId plus one of nothing, an opaque byte-string body, an
// XML element, or an in-memory record resolved through an
// EncodingRegistry.
type ExtensionObject struct {
	TypeID   ExpandedNodeId
	BodyType ExtensionObjectBodyType

	// Value holds the decoded record when BodyType is
	// ExtensionObjectBodyByteString and the registry resolved a
	// constructor; RawBody holds the undecoded bytes otherwise (body
	// type none/XML, or an unresolved byte-string body).
	Value   Encodable
	RawBody []byte
}

// NewExtensionObject wraps v using its registered encoding id from r.
func NewExtensionObject(r *EncodingRegistry, v Encodable) (ExtensionObject, error) {
	if v == nil {
		return ExtensionObject{BodyType: ExtensionObjectBodyNone}, nil
	}
	id, err := r.EncodingIDFor(v)
	if err != nil {
		return ExtensionObject{}, err
	}
	return ExtensionObject{TypeID: id, BodyType: ExtensionObjectBodyByteString, Value: v}, nil
}

// WriteExtensionObject encodes the encoding-id NodeId, the 1-byte body
// type tag, and the length-prefixed body. A typed Value is encoded
// into its own buffer first so its length can be written as the
// byte-string length prefix.
func (e *Encoder) WriteExtensionObject(x ExtensionObject) *Encoder {
	e.WriteExpandedNodeId(x.TypeID)
	e.WriteByte(byte(x.BodyType))
	switch x.BodyType {
	case ExtensionObjectBodyNone:
		return e
	case ExtensionObjectBodyXML:
		return e.WriteByteString(x.RawBody)
	default:
		if x.Value != nil {
			inner := NewEncoder(64)
			x.Value.Encode(inner)
			return e.WriteByteString(inner.Bytes())
		}
		return e.WriteByteString(x.RawBody)
	}
}

// ReadExtensionObject decodes the envelope, then resolves the body
// against r: a byte-string body whose encoding id is registered is
// decoded into a fresh Encodable; otherwise the raw bytes are kept as
// RawBody for the caller to inspect.
func (d *Decoder) ReadExtensionObject(r *EncodingRegistry) ExtensionObject {
	x := ExtensionObject{TypeID: d.ReadExpandedNodeId()}
	x.BodyType = ExtensionObjectBodyType(d.ReadByte())
	switch x.BodyType {
	case ExtensionObjectBodyNone:
		return x
	default:
		body := d.ReadByteString()
		if x.BodyType != ExtensionObjectBodyByteString || r == nil {
			x.RawBody = body
			return x
		}
		v, err := r.New(x.TypeID)
		if err != nil {
			x.RawBody = body
			return x
		}
		inner := NewDecoder(body)
		v.Decode(inner)
		if inner.Err() != nil {
			d.fail(inner.Err())
		}
		x.Value = v
		return x
	}
}
