package ua

import "time"

// Presence mask bits for DataValue's encoding, per companion standard
// Part 6, 5.2.2.17.
const (
	dataValueHasValue             byte = 0x01
	dataValueHasStatusCode        byte = 0x02
	dataValueHasSourceTimestamp   byte = 0x04
	dataValueHasServerTimestamp   byte = 0x08
	dataValueHasSourcePicoseconds byte = 0x10
	dataValueHasServerPicoseconds byte = 0x20
)

// DataValue is a Variant value plus a StatusCode and source/server
// timestamps with optional picosecond offsets; the wire mask bits
// declare which fields are present.
type DataValue struct {
	HasValue bool
	Value    Variant

	HasStatusCode bool
	StatusCode    StatusCode

	HasSourceTimestamp bool
	SourceTimestamp    time.Time
	HasSourcePicoseconds bool
	SourcePicoseconds    uint16

	HasServerTimestamp bool
	ServerTimestamp    time.Time
	HasServerPicoseconds bool
	ServerPicoseconds    uint16
}

// NewDataValue wraps v as a present Good-status DataValue with no
// timestamps set.
func NewDataValue(v Variant) *DataValue {
	return &DataValue{HasValue: true, Value: v}
}

func (e *Encoder) WriteDataValue(r *EncodingRegistry, dv *DataValue) *Encoder {
	if dv == nil {
		return e.WriteByte(0)
	}
	var mask byte
	if dv.HasValue {
		mask |= dataValueHasValue
	}
	if dv.HasStatusCode {
		mask |= dataValueHasStatusCode
	}
	if dv.HasSourceTimestamp {
		mask |= dataValueHasSourceTimestamp
	}
	if dv.HasServerTimestamp {
		mask |= dataValueHasServerTimestamp
	}
	if dv.HasSourcePicoseconds {
		mask |= dataValueHasSourcePicoseconds
	}
	if dv.HasServerPicoseconds {
		mask |= dataValueHasServerPicoseconds
	}
	e.WriteByte(mask)
	if dv.HasValue {
		e.WriteVariant(r, dv.Value)
	}
	if dv.HasStatusCode {
		e.WriteStatusCode(dv.StatusCode)
	}
	if dv.HasSourceTimestamp {
		e.WriteDateTime(dv.SourceTimestamp)
	}
	if dv.HasSourcePicoseconds {
		e.WriteUint16(dv.SourcePicoseconds)
	}
	if dv.HasServerTimestamp {
		e.WriteDateTime(dv.ServerTimestamp)
	}
	if dv.HasServerPicoseconds {
		e.WriteUint16(dv.ServerPicoseconds)
	}
	return e
}

func (d *Decoder) ReadDataValue(r *EncodingRegistry) *DataValue {
	mask := d.ReadByte()
	dv := &DataValue{}
	if dv.HasValue = mask&dataValueHasValue != 0; dv.HasValue {
		dv.Value = d.ReadVariant(r)
	}
	if dv.HasStatusCode = mask&dataValueHasStatusCode != 0; dv.HasStatusCode {
		dv.StatusCode = d.ReadStatusCode()
	}
	if dv.HasSourceTimestamp = mask&dataValueHasSourceTimestamp != 0; dv.HasSourceTimestamp {
		dv.SourceTimestamp = d.ReadDateTime()
	}
	if dv.HasSourcePicoseconds = mask&dataValueHasSourcePicoseconds != 0; dv.HasSourcePicoseconds {
		dv.SourcePicoseconds = d.ReadUint16()
	}
	if dv.HasServerTimestamp = mask&dataValueHasServerTimestamp != 0; dv.HasServerTimestamp {
		dv.ServerTimestamp = d.ReadDateTime()
	}
	if dv.HasServerPicoseconds = mask&dataValueHasServerPicoseconds != 0; dv.HasServerPicoseconds {
		dv.ServerPicoseconds = d.ReadUint16()
	}
	return dv
}
