package ua

import "time"

// VariantType is the built-in scalar type tag carried by a Variant,
// one of the 25 types listed in "Variant".
type VariantType byte

const (
	VariantTypeNull VariantType = iota
	VariantTypeBoolean
	VariantTypeSByte
	VariantTypeByte
	VariantTypeInt16
	VariantTypeUint16
	VariantTypeInt32
	VariantTypeUint32
	VariantTypeInt64
	VariantTypeUint64
	VariantTypeFloat
	VariantTypeDouble
	VariantTypeString
	VariantTypeDateTime
	VariantTypeGuid
	VariantTypeByteString
	VariantTypeXmlElement
	VariantTypeNodeId
	VariantTypeExpandedNodeId
	VariantTypeStatusCode
	VariantTypeQualifiedName
	VariantTypeLocalizedText
	VariantTypeExtensionObject
	VariantTypeDataValue
	VariantTypeVariant
	VariantTypeDiagnosticInfo
)

const (
	variantArrayBit      byte = 0x80
	variantDimensionsBit byte = 0x40
	variantTypeMask      byte = 0x3F
)

// Variant is a tagged union carrying either a scalar, a one-dimensional
// array, or a multidimensional array of one of the 25 built-in types.
// ArrayDimensions is nil for a scalar and for a one-dimensional array;
// it is set only for true multidimensional values, whose product must
// equal len(Array).
type Variant struct {
	Type            VariantType
	Scalar          interface{}
	Array           []interface{} // nil when Type carries a scalar
	IsArray         bool
	ArrayDimensions []int32
}

// NewVariant wraps a scalar Go value in a Variant, inferring its
// VariantType. Panics if v's type has no built-in mapping.
func NewVariant(v interface{}) Variant {
	t, ok := variantTypeOf(v)
	if !ok {
		panic("ua: value has no built-in Variant type")
	}
	return Variant{Type: t, Scalar: v}
}

// NewVariantArray wraps a one-dimensional array of scalars sharing t.
func NewVariantArray(t VariantType, values []interface{}) Variant {
	return Variant{Type: t, Array: values, IsArray: true}
}

// NewVariantMatrix wraps a flattened multidimensional array; the
// product of dims must equal len(values).
func NewVariantMatrix(t VariantType, dims []int32, values []interface{}) (Variant, error) {
	n := int64(1)
	for _, d := range dims {
		n *= int64(d)
	}
	if n != int64(len(values)) {
		return Variant{}, ErrVariantArrayShape
	}
	return Variant{Type: t, Array: values, IsArray: true, ArrayDimensions: dims}, nil
}

func variantTypeOf(v interface{}) (VariantType, bool) {
	switch v.(type) {
	case bool:
		return VariantTypeBoolean, true
	case int8:
		return VariantTypeSByte, true
	case byte:
		return VariantTypeByte, true
	case int16:
		return VariantTypeInt16, true
	case uint16:
		return VariantTypeUint16, true
	case int32:
		return VariantTypeInt32, true
	case uint32:
		return VariantTypeUint32, true
	case int64:
		return VariantTypeInt64, true
	case uint64:
		return VariantTypeUint64, true
	case float32:
		return VariantTypeFloat, true
	case float64:
		return VariantTypeDouble, true
	case String:
		return VariantTypeString, true
	case Guid:
		return VariantTypeGuid, true
	case []byte:
		return VariantTypeByteString, true
	case NodeId:
		return VariantTypeNodeId, true
	case ExpandedNodeId:
		return VariantTypeExpandedNodeId, true
	case StatusCode:
		return VariantTypeStatusCode, true
	case QualifiedName:
		return VariantTypeQualifiedName, true
	case LocalizedText:
		return VariantTypeLocalizedText, true
	case ExtensionObject:
		return VariantTypeExtensionObject, true
	case *DataValue:
		return VariantTypeDataValue, true
	case *Variant:
		return VariantTypeVariant, true
	case *DiagnosticInfo:
		return VariantTypeDiagnosticInfo, true
	case time.Time:
		return VariantTypeDateTime, true
	}
	return VariantTypeNull, false
}

// WriteVariant encodes the 1-byte type|array|dimensions tag, then the
// scalar, 1-d array (length-prefixed), or flattened array plus
// dimensions vector.
func (e *Encoder) WriteVariant(r *EncodingRegistry, v Variant) *Encoder {
	tag := byte(v.Type) & variantTypeMask
	if v.IsArray {
		tag |= variantArrayBit
		if len(v.ArrayDimensions) > 0 {
			tag |= variantDimensionsBit
		}
	}
	e.WriteByte(tag)

	if v.Type == VariantTypeNull {
		return e
	}
	if !v.IsArray {
		e.writeVariantValue(r, v.Type, v.Scalar)
		return e
	}
	e.WriteInt32(int32(len(v.Array)))
	for _, elem := range v.Array {
		e.writeVariantValue(r, v.Type, elem)
	}
	if len(v.ArrayDimensions) > 0 {
		e.WriteInt32(int32(len(v.ArrayDimensions)))
		for _, d := range v.ArrayDimensions {
			e.WriteInt32(d)
		}
	}
	return e
}

func (e *Encoder) writeVariantValue(r *EncodingRegistry, t VariantType, v interface{}) {
	switch t {
	case VariantTypeBoolean:
		e.WriteBool(v.(bool))
	case VariantTypeSByte:
		e.WriteByte(byte(v.(int8)))
	case VariantTypeByte:
		e.WriteByte(v.(byte))
	case VariantTypeInt16:
		e.WriteInt16(v.(int16))
	case VariantTypeUint16:
		e.WriteUint16(v.(uint16))
	case VariantTypeInt32:
		e.WriteInt32(v.(int32))
	case VariantTypeUint32:
		e.WriteUint32(v.(uint32))
	case VariantTypeInt64:
		e.WriteInt64(v.(int64))
	case VariantTypeUint64:
		e.WriteUint64(v.(uint64))
	case VariantTypeFloat:
		e.WriteFloat32(v.(float32))
	case VariantTypeDouble:
		e.WriteFloat64(v.(float64))
	case VariantTypeString, VariantTypeXmlElement:
		e.WriteString(v.(String))
	case VariantTypeDateTime:
		e.WriteDateTime(v.(time.Time))
	case VariantTypeGuid:
		e.WriteGuid(v.(Guid))
	case VariantTypeByteString:
		e.WriteByteString(v.([]byte))
	case VariantTypeNodeId:
		e.WriteNodeId(v.(NodeId))
	case VariantTypeExpandedNodeId:
		e.WriteExpandedNodeId(v.(ExpandedNodeId))
	case VariantTypeStatusCode:
		e.WriteStatusCode(v.(StatusCode))
	case VariantTypeQualifiedName:
		e.WriteQualifiedName(v.(QualifiedName))
	case VariantTypeLocalizedText:
		e.WriteLocalizedText(v.(LocalizedText))
	case VariantTypeExtensionObject:
		e.WriteExtensionObject(v.(ExtensionObject))
	case VariantTypeDataValue:
		e.WriteDataValue(r, v.(*DataValue))
	case VariantTypeVariant:
		e.WriteVariant(r, *(v.(*Variant)))
	case VariantTypeDiagnosticInfo:
		e.WriteDiagnosticInfo(v.(*DiagnosticInfo))
	}
}

// ReadVariant decodes the tag byte and dispatches to the matching
// reader, reconstructing scalar/array/matrix shape.
func (d *Decoder) ReadVariant(r *EncodingRegistry) Variant {
	tag := d.ReadByte()
	t := VariantType(tag & variantTypeMask)
	isArray := tag&variantArrayBit != 0
	hasDims := tag&variantDimensionsBit != 0

	if t == VariantTypeNull {
		return Variant{}
	}
	if !isArray {
		return Variant{Type: t, Scalar: d.readVariantValue(r, t)}
	}

	n := d.ReadInt32()
	if n < 0 {
		d.fail(ErrVariantArrayShape)
		return Variant{Type: t, IsArray: true}
	}
	values := make([]interface{}, n)
	for i := range values {
		values[i] = d.readVariantValue(r, t)
	}
	v := Variant{Type: t, Array: values, IsArray: true}
	if hasDims {
		dn := d.ReadInt32()
		dims := make([]int32, dn)
		product := int64(1)
		for i := range dims {
			dims[i] = d.ReadInt32()
			product *= int64(dims[i])
		}
		if product != int64(len(values)) {
			d.fail(ErrVariantArrayShape)
		}
		v.ArrayDimensions = dims
	}
	return v
}

func (d *Decoder) readVariantValue(r *EncodingRegistry, t VariantType) interface{} {
	switch t {
	case VariantTypeBoolean:
		return d.ReadBool()
	case VariantTypeSByte:
		return int8(d.ReadByte())
	case VariantTypeByte:
		return d.ReadByte()
	case VariantTypeInt16:
		return d.ReadInt16()
	case VariantTypeUint16:
		return d.ReadUint16()
	case VariantTypeInt32:
		return d.ReadInt32()
	case VariantTypeUint32:
		return d.ReadUint32()
	case VariantTypeInt64:
		return d.ReadInt64()
	case VariantTypeUint64:
		return d.ReadUint64()
	case VariantTypeFloat:
		return d.ReadFloat32()
	case VariantTypeDouble:
		return d.ReadFloat64()
	case VariantTypeString, VariantTypeXmlElement:
		return d.ReadString()
	case VariantTypeDateTime:
		return d.ReadDateTime()
	case VariantTypeGuid:
		return d.ReadGuid()
	case VariantTypeByteString:
		return d.ReadByteString()
	case VariantTypeNodeId:
		return d.ReadNodeId()
	case VariantTypeExpandedNodeId:
		return d.ReadExpandedNodeId()
	case VariantTypeStatusCode:
		return d.ReadStatusCode()
	case VariantTypeQualifiedName:
		return d.ReadQualifiedName()
	case VariantTypeLocalizedText:
		return d.ReadLocalizedText()
	case VariantTypeExtensionObject:
		return d.ReadExtensionObject(r)
	case VariantTypeDataValue:
		return d.ReadDataValue(r)
	case VariantTypeVariant:
		v := d.ReadVariant(r)
		return &v
	case VariantTypeDiagnosticInfo:
		return d.ReadDiagnosticInfo()
	default:
		d.fail(ErrVariantTypeMissing)
		return nil
	}
}
