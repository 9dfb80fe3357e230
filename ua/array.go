package ua

// WriteStringArray encodes a length-prefixed array of strings; nil
// encodes the -1 null-array sentinel.
func (e *Encoder) WriteStringArray(v []String) *Encoder {
	if v == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(v)))
	for _, s := range v {
		e.WriteString(s)
	}
	return e
}

func (d *Decoder) ReadStringArray() []String {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([]String, n)
	for i := range v {
		v[i] = d.ReadString()
	}
	return v
}

// WriteNodeIdArray encodes a length-prefixed array of NodeIds.
func (e *Encoder) WriteNodeIdArray(v []NodeId) *Encoder {
	if v == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(v)))
	for _, n := range v {
		e.WriteNodeId(n)
	}
	return e
}

func (d *Decoder) ReadNodeIdArray() []NodeId {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([]NodeId, n)
	for i := range v {
		v[i] = d.ReadNodeId()
	}
	return v
}

// WriteByteStringArray encodes a length-prefixed array of byte strings.
func (e *Encoder) WriteByteStringArray(v [][]byte) *Encoder {
	if v == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(v)))
	for _, b := range v {
		e.WriteByteString(b)
	}
	return e
}

func (d *Decoder) ReadByteStringArray() [][]byte {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([][]byte, n)
	for i := range v {
		v[i] = d.ReadByteString()
	}
	return v
}

// WriteInt32Array encodes a length-prefixed array of int32, used for
// Variant ArrayDimensions-shaped auxiliary fields elsewhere on the wire.
func (e *Encoder) WriteInt32Array(v []int32) *Encoder {
	if v == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(v)))
	for _, n := range v {
		e.WriteInt32(n)
	}
	return e
}

func (d *Decoder) ReadInt32Array() []int32 {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([]int32, n)
	for i := range v {
		v[i] = d.ReadInt32()
	}
	return v
}

// WriteUint32Array encodes a length-prefixed array of uint32.
func (e *Encoder) WriteUint32Array(v []uint32) *Encoder {
	if v == nil {
		return e.WriteInt32(-1)
	}
	e.WriteInt32(int32(len(v)))
	for _, n := range v {
		e.WriteUint32(n)
	}
	return e
}

func (d *Decoder) ReadUint32Array() []uint32 {
	n := d.ReadInt32()
	if n < 0 {
		return nil
	}
	v := make([]uint32, n)
	for i := range v {
		v[i] = d.ReadUint32()
	}
	return v
}
