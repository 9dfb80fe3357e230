package ua

// HistoryReadValueID names one node whose history is being read,
// mirroring ReadValueID's IndexRange/DataEncoding fields.
type HistoryReadValueID struct {
	NodeID            NodeId
	IndexRange        string
	DataEncoding      QualifiedName
	ContinuationPoint []byte
}

func (h *HistoryReadValueID) Encode(e *Encoder) {
	e.WriteNodeId(h.NodeID)
	e.WriteString(NewString(h.IndexRange))
	e.WriteQualifiedName(h.DataEncoding)
	e.WriteByteString(h.ContinuationPoint)
}

func (h *HistoryReadValueID) Decode(d *Decoder) {
	h.NodeID = d.ReadNodeId()
	h.IndexRange = d.ReadString().String()
	h.DataEncoding = d.ReadQualifiedName()
	h.ContinuationPoint = d.ReadByteString()
}

// ReadRawModifiedDetails requests raw historical values between
// StartTime and EndTime, bounded by NumValuesPerNode.
type ReadRawModifiedDetails struct {
	IsReadModified   bool
	StartTime        int64
	EndTime          int64
	NumValuesPerNode uint32
	ReturnBounds     bool
}

func (r *ReadRawModifiedDetails) Encode(e *Encoder) {
	e.WriteBool(r.IsReadModified)
	e.WriteInt64(r.StartTime)
	e.WriteInt64(r.EndTime)
	e.WriteUint32(r.NumValuesPerNode)
	e.WriteBool(r.ReturnBounds)
}

func (r *ReadRawModifiedDetails) Decode(d *Decoder) {
	r.IsReadModified = d.ReadBool()
	r.StartTime = d.ReadInt64()
	r.EndTime = d.ReadInt64()
	r.NumValuesPerNode = d.ReadUint32()
	r.ReturnBounds = d.ReadBool()
}

// HistoryReadResult carries one node's returned raw data values plus a
// continuation point for paging, mirroring BrowseResult's shape.
type HistoryReadResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	DataValues        []*DataValue
	registry          *EncodingRegistry
}

// NewHistoryReadResult binds the registry used to decode DataValues.
func NewHistoryReadResult(r *EncodingRegistry) *HistoryReadResult {
	return &HistoryReadResult{registry: r}
}

func (h *HistoryReadResult) Encode(e *Encoder) {
	e.WriteStatusCode(h.StatusCode)
	e.WriteByteString(h.ContinuationPoint)
	e.WriteInt32(int32(len(h.DataValues)))
	for _, dv := range h.DataValues {
		e.WriteDataValue(h.registry, dv)
	}
}

func (h *HistoryReadResult) Decode(d *Decoder) {
	h.StatusCode = d.ReadStatusCode()
	h.ContinuationPoint = d.ReadByteString()
	n := d.ReadInt32()
	if n >= 0 {
		h.DataValues = make([]*DataValue, n)
		for i := range h.DataValues {
			h.DataValues[i] = d.ReadDataValue(h.registry)
		}
	}
}

// HistoryReadRequest reads historical data or events for a batch of
// nodes; HistoryReadDetails carries the encoded ReadRawModifiedDetails
// (the only details variant implemented; see Non-goals).
type HistoryReadRequest struct {
	RequestHeader      RequestHeader
	HistoryReadDetails ExtensionObject
	TimestampsToReturn TimestampsToReturn
	ReleaseContinuationPoints bool
	NodesToRead        []*HistoryReadValueID
}

func (h *HistoryReadRequest) Encode(e *Encoder) {
	h.RequestHeader.Encode(e)
	e.WriteExtensionObject(h.HistoryReadDetails)
	e.WriteInt32(int32(h.TimestampsToReturn))
	e.WriteBool(h.ReleaseContinuationPoints)
	e.WriteInt32(int32(len(h.NodesToRead)))
	for _, n := range h.NodesToRead {
		n.Encode(e)
	}
}

func (h *HistoryReadRequest) Decode(d *Decoder) {
	h.RequestHeader.Decode(d)
	h.HistoryReadDetails = d.ReadExtensionObject(nil)
	h.TimestampsToReturn = TimestampsToReturn(d.ReadInt32())
	h.ReleaseContinuationPoints = d.ReadBool()
	n := d.ReadInt32()
	if n >= 0 {
		h.NodesToRead = make([]*HistoryReadValueID, n)
		for i := range h.NodesToRead {
			v := &HistoryReadValueID{}
			v.Decode(d)
			h.NodesToRead[i] = v
		}
	}
}

// HistoryReadResponse carries one HistoryReadResult per node in
// request order.
type HistoryReadResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*HistoryReadResult
	DiagnosticInfos []*DiagnosticInfo
	registry        *EncodingRegistry
}

// NewHistoryReadResponse binds the registry used to decode each
// result's DataValues.
func NewHistoryReadResponse(r *EncodingRegistry) *HistoryReadResponse {
	return &HistoryReadResponse{registry: r}
}

func (h *HistoryReadResponse) Encode(e *Encoder) {
	h.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(h.Results)))
	for _, res := range h.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(h.DiagnosticInfos)))
	for _, di := range h.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (h *HistoryReadResponse) Decode(d *Decoder) {
	h.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		h.Results = make([]*HistoryReadResult, n)
		for i := range h.Results {
			h.Results[i] = NewHistoryReadResult(h.registry)
			h.Results[i].Decode(d)
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		h.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range h.DiagnosticInfos {
			h.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

func (r *HistoryReadResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
