package ua

// BrowseDirection selects which reference direction Browse follows.
type BrowseDirection int32

const (
	BrowseDirectionForward BrowseDirection = iota
	BrowseDirectionInverse
	BrowseDirectionBoth
)

// NodeClass is a bitmask of node kinds used to filter Browse results.
type NodeClass uint32

const (
	NodeClassObject NodeClass = 1 << iota
	NodeClassVariable
	NodeClassMethod
	NodeClassObjectType
	NodeClassVariableType
	NodeClassReferenceType
	NodeClassDataType
	NodeClassView
)

// BrowseResultMask selects which ReferenceDescription fields a server
// should populate.
type BrowseResultMask uint32

const (
	BrowseResultMaskReferenceTypeID BrowseResultMask = 1 << iota
	BrowseResultMaskIsForward
	BrowseResultMaskNodeClass
	BrowseResultMaskBrowseName
	BrowseResultMaskDisplayName
	BrowseResultMaskTypeDefinition
)

const BrowseResultMaskAll = BrowseResultMaskReferenceTypeID | BrowseResultMaskIsForward |
	BrowseResultMaskNodeClass | BrowseResultMaskBrowseName | BrowseResultMaskDisplayName |
	BrowseResultMaskTypeDefinition

// BrowseDescription names the node to browse from, which references to
// follow, and which fields to return.
type BrowseDescription struct {
	NodeID          NodeId
	Direction       BrowseDirection
	ReferenceTypeID NodeId
	IncludeSubtypes bool
	NodeClassMask   NodeClass
	ResultMask      BrowseResultMask
}

func (b *BrowseDescription) Encode(e *Encoder) {
	e.WriteNodeId(b.NodeID)
	e.WriteInt32(int32(b.Direction))
	e.WriteNodeId(b.ReferenceTypeID)
	e.WriteBool(b.IncludeSubtypes)
	e.WriteUint32(uint32(b.NodeClassMask))
	e.WriteUint32(uint32(b.ResultMask))
}

func (b *BrowseDescription) Decode(d *Decoder) {
	b.NodeID = d.ReadNodeId()
	b.Direction = BrowseDirection(d.ReadInt32())
	b.ReferenceTypeID = d.ReadNodeId()
	b.IncludeSubtypes = d.ReadBool()
	b.NodeClassMask = NodeClass(d.ReadUint32())
	b.ResultMask = BrowseResultMask(d.ReadUint32())
}

// ReferenceDescription is one edge discovered by Browse/BrowseNext.
type ReferenceDescription struct {
	ReferenceTypeID NodeId
	IsForward       bool
	NodeID          ExpandedNodeId
	BrowseName      QualifiedName
	DisplayName     LocalizedText
	NodeClass       NodeClass
	TypeDefinition  ExpandedNodeId
}

func (r *ReferenceDescription) Encode(e *Encoder) {
	e.WriteNodeId(r.ReferenceTypeID)
	e.WriteBool(r.IsForward)
	e.WriteExpandedNodeId(r.NodeID)
	e.WriteQualifiedName(r.BrowseName)
	e.WriteLocalizedText(r.DisplayName)
	e.WriteUint32(uint32(r.NodeClass))
	e.WriteExpandedNodeId(r.TypeDefinition)
}

func (r *ReferenceDescription) Decode(d *Decoder) {
	r.ReferenceTypeID = d.ReadNodeId()
	r.IsForward = d.ReadBool()
	r.NodeID = d.ReadExpandedNodeId()
	r.BrowseName = d.ReadQualifiedName()
	r.DisplayName = d.ReadLocalizedText()
	r.NodeClass = NodeClass(d.ReadUint32())
	r.TypeDefinition = d.ReadExpandedNodeId()
}

// BrowseResult is one BrowseDescription's outcome: a status, a page of
// references, and a continuation point if the server paginated.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	References        []*ReferenceDescription
}

func (r *BrowseResult) Encode(e *Encoder) {
	e.WriteStatusCode(r.StatusCode)
	e.WriteByteString(r.ContinuationPoint)
	e.WriteInt32(int32(len(r.References)))
	for _, ref := range r.References {
		ref.Encode(e)
	}
}

func (r *BrowseResult) Decode(d *Decoder) {
	r.StatusCode = d.ReadStatusCode()
	r.ContinuationPoint = d.ReadByteString()
	n := d.ReadInt32()
	if n >= 0 {
		r.References = make([]*ReferenceDescription, n)
		for i := range r.References {
			ref := &ReferenceDescription{}
			ref.Decode(d)
			r.References[i] = ref
		}
	}
}

// ViewDescription optionally scopes a Browse to one view and a past
// timestamp; the zero value browses the full address space now.
type ViewDescription struct {
	ViewID    NodeId
	Timestamp int64
	ViewVersion uint32
}

func (v *ViewDescription) Encode(e *Encoder) {
	e.WriteNodeId(v.ViewID)
	e.WriteInt64(v.Timestamp)
	e.WriteUint32(v.ViewVersion)
}

func (v *ViewDescription) Decode(d *Decoder) {
	v.ViewID = d.ReadNodeId()
	v.Timestamp = d.ReadInt64()
	v.ViewVersion = d.ReadUint32()
}

// BrowseRequest walks the server address space from a set of starting
// nodes.
type BrowseRequest struct {
	RequestHeader        RequestHeader
	View                 ViewDescription
	RequestedMaxReferencesPerNode uint32
	NodesToBrowse        []*BrowseDescription
}

func (r *BrowseRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	r.View.Encode(e)
	e.WriteUint32(r.RequestedMaxReferencesPerNode)
	e.WriteInt32(int32(len(r.NodesToBrowse)))
	for _, b := range r.NodesToBrowse {
		b.Encode(e)
	}
}

func (r *BrowseRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.View.Decode(d)
	r.RequestedMaxReferencesPerNode = d.ReadUint32()
	n := d.ReadInt32()
	if n >= 0 {
		r.NodesToBrowse = make([]*BrowseDescription, n)
		for i := range r.NodesToBrowse {
			b := &BrowseDescription{}
			b.Decode(d)
			r.NodesToBrowse[i] = b
		}
	}
}

// BrowseResponse carries one BrowseResult per BrowseDescription in
// request order; a result with a non-empty ContinuationPoint needs a
// follow-up BrowseNextRequest.
type BrowseResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*BrowseResult
	DiagnosticInfos []*DiagnosticInfo
}

func (r *BrowseResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, res := range r.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *BrowseResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]*BrowseResult, n)
		for i := range r.Results {
			res := &BrowseResult{}
			res.Decode(d)
			r.Results[i] = res
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

// BrowseNextRequest resumes paginated Browse results, or releases the
// server-held continuation points when ReleaseContinuationPoints is
// set.
type BrowseNextRequest struct {
	RequestHeader             RequestHeader
	ReleaseContinuationPoints bool
	ContinuationPoints        [][]byte
}

func (r *BrowseNextRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteBool(r.ReleaseContinuationPoints)
	e.WriteByteStringArray(r.ContinuationPoints)
}

func (r *BrowseNextRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.ReleaseContinuationPoints = d.ReadBool()
	r.ContinuationPoints = d.ReadByteStringArray()
}

// BrowseNextResponse mirrors BrowseResponse for the follow-up page.
type BrowseNextResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*BrowseResult
	DiagnosticInfos []*DiagnosticInfo
}

func (r *BrowseNextResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, res := range r.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *BrowseNextResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]*BrowseResult, n)
		for i := range r.Results {
			res := &BrowseResult{}
			res.Decode(d)
			r.Results[i] = res
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

func (r *BrowseResponse) GetResponseHeader() *ResponseHeader     { return &r.ResponseHeader }
func (r *BrowseNextResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
