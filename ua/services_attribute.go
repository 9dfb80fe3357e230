package ua

// TimestampsToReturn controls which timestamps a Read/monitored-item
// result carries back.
type TimestampsToReturn int32

const (
	TimestampsToReturnSource TimestampsToReturn = iota
	TimestampsToReturnServer
	TimestampsToReturnBoth
	TimestampsToReturnNeither
	TimestampsToReturnInvalid
)

// ReadValueID names one attribute of one node to read or monitor.
type ReadValueID struct {
	NodeID       NodeId
	AttributeID  uint32
	IndexRange   string
	DataEncoding QualifiedName
}

func (r *ReadValueID) Encode(e *Encoder) {
	e.WriteNodeId(r.NodeID)
	e.WriteUint32(r.AttributeID)
	e.WriteString(NewString(r.IndexRange))
	e.WriteQualifiedName(r.DataEncoding)
}

func (r *ReadValueID) Decode(d *Decoder) {
	r.NodeID = d.ReadNodeId()
	r.AttributeID = d.ReadUint32()
	r.IndexRange = d.ReadString().String()
	r.DataEncoding = d.ReadQualifiedName()
}

// ReadRequest reads a batch of attributes in one round trip.
type ReadRequest struct {
	RequestHeader     RequestHeader
	MaxAge            float64
	TimestampsToReturn TimestampsToReturn
	NodesToRead       []*ReadValueID
}

func (r *ReadRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteFloat64(r.MaxAge)
	e.WriteInt32(int32(r.TimestampsToReturn))
	e.WriteInt32(int32(len(r.NodesToRead)))
	for _, n := range r.NodesToRead {
		n.Encode(e)
	}
}

func (r *ReadRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.MaxAge = d.ReadFloat64()
	r.TimestampsToReturn = TimestampsToReturn(d.ReadInt32())
	n := d.ReadInt32()
	if n >= 0 {
		r.NodesToRead = make([]*ReadValueID, n)
		for i := range r.NodesToRead {
			v := &ReadValueID{}
			v.Decode(d)
			r.NodesToRead[i] = v
		}
	}
}

// ReadResponse carries one DataValue per ReadValueID in request order.
type ReadResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*DataValue
	DiagnosticInfos []*DiagnosticInfo
	registry        *EncodingRegistry
}

// NewReadResponse binds r so Encode/Decode can resolve Variant bodies
// through the same registry the caller uses for the channel.
func NewReadResponse(r *EncodingRegistry) *ReadResponse { return &ReadResponse{registry: r} }

func (r *ReadResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, dv := range r.Results {
		e.WriteDataValue(r.registry, dv)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *ReadResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]*DataValue, n)
		for i := range r.Results {
			r.Results[i] = d.ReadDataValue(r.registry)
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// WriteValue pairs a ReadValueID target with the DataValue to write.
type WriteValue struct {
	NodeID      NodeId
	AttributeID uint32
	IndexRange  string
	Value       *DataValue
	registry    *EncodingRegistry
}

// NewWriteValue binds the registry used to encode Value's Variant.
func NewWriteValue(r *EncodingRegistry) *WriteValue { return &WriteValue{registry: r} }

func (w *WriteValue) Encode(e *Encoder) {
	e.WriteNodeId(w.NodeID)
	e.WriteUint32(w.AttributeID)
	e.WriteString(NewString(w.IndexRange))
	e.WriteDataValue(w.registry, w.Value)
}

func (w *WriteValue) Decode(d *Decoder) {
	w.NodeID = d.ReadNodeId()
	w.AttributeID = d.ReadUint32()
	w.IndexRange = d.ReadString().String()
	w.Value = d.ReadDataValue(w.registry)
}

// WriteRequest writes a batch of attribute values.
type WriteRequest struct {
	RequestHeader RequestHeader
	NodesToWrite  []*WriteValue
}

func (r *WriteRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteInt32(int32(len(r.NodesToWrite)))
	for _, w := range r.NodesToWrite {
		w.Encode(e)
	}
}

func (r *WriteRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.NodesToWrite = make([]*WriteValue, n)
		for i := range r.NodesToWrite {
			w := &WriteValue{}
			w.Decode(d)
			r.NodesToWrite[i] = w
		}
	}
}

// WriteResponse carries one StatusCode per WriteValue in request order.
type WriteResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []*DiagnosticInfo
}

func (r *WriteResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, s := range r.Results {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *WriteResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]StatusCode, n)
		for i := range r.Results {
			r.Results[i] = d.ReadStatusCode()
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

func (r *ReadResponse) GetResponseHeader() *ResponseHeader  { return &r.ResponseHeader }
func (r *WriteResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
