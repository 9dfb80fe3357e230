package ua

// ExpandedNodeId is a NodeId plus an optional namespace URI (preferred
// over the namespace index when crossing server boundaries) and an
// optional server index.
type ExpandedNodeId struct {
	NodeID       NodeId
	NamespaceURI string // empty means "not present"
	ServerIndex  uint32
}

// NewExpandedNodeId wraps a local NodeId with no namespace URI or
// server index.
func NewExpandedNodeId(id NodeId) ExpandedNodeId {
	return ExpandedNodeId{NodeID: id}
}

// Equal compares all fields structurally.
func (e ExpandedNodeId) Equal(o ExpandedNodeId) bool {
	return e.NodeID.Equal(o.NodeID) && e.NamespaceURI == o.NamespaceURI && e.ServerIndex == o.ServerIndex
}

// NamespaceTable maps namespace URIs to/from the per-channel namespace
// index assigned by CreateSession/ActivateSession. Index 0 is always
// "http://opcfoundation.org/UA/".
type NamespaceTable struct {
	uris []string
}

// NewNamespaceTable returns a table seeded with the standard
// namespace at index 0.
func NewNamespaceTable(uris ...string) *NamespaceTable {
	t := &NamespaceTable{uris: []string{"http://opcfoundation.org/UA/"}}
	t.uris = append(t.uris, uris...)
	return t
}

// Index returns the namespace index for uri, or false if unknown.
func (t *NamespaceTable) Index(uri string) (uint16, bool) {
	for i, u := range t.uris {
		if u == uri {
			return uint16(i), true
		}
	}
	return 0, false
}

// URI returns the namespace URI at idx, or "" if out of range.
func (t *NamespaceTable) URI(idx uint16) string {
	if int(idx) >= len(t.uris) {
		return ""
	}
	return t.uris[idx]
}

// ToNodeId maps e to a local NodeId using t: a non-empty NamespaceURI
// always wins over NamespaceIndex when both are present.
func (e ExpandedNodeId) ToNodeId(t *NamespaceTable) (NodeId, error) {
	if e.NamespaceURI == "" {
		return e.NodeID, nil
	}
	idx, ok := t.Index(e.NamespaceURI)
	if !ok {
		return NodeId{}, ErrNamespaceUnknown
	}
	n := e.NodeID
	n.ns = idx
	return n, nil
}

const (
	expandedNodeIDFlagNamespaceURI byte = 0x80
	expandedNodeIDFlagServerIndex  byte = 0x40
)

// WriteExpandedNodeId encodes the NodeId followed by the optional
// namespace-URI/server-index fields, OR'ing their presence bits into
// the NodeId format prefix as describes.
func (e *Encoder) WriteExpandedNodeId(x ExpandedNodeId) *Encoder {
	body := NewEncoder(16)
	body.WriteNodeId(x.NodeID)
	raw := body.Bytes()

	flags := raw[0]
	if x.NamespaceURI != "" {
		flags |= expandedNodeIDFlagNamespaceURI
	}
	if x.ServerIndex != 0 {
		flags |= expandedNodeIDFlagServerIndex
	}
	e.WriteByte(flags)
	e.WriteBytes(raw[1:])
	if x.NamespaceURI != "" {
		e.WriteString(NewString(x.NamespaceURI))
	}
	if x.ServerIndex != 0 {
		e.WriteUint32(x.ServerIndex)
	}
	return e
}

// ReadExpandedNodeId decodes an ExpandedNodeId, masking the presence
// bits off the format prefix before delegating to ReadNodeId.
func (d *Decoder) ReadExpandedNodeId() ExpandedNodeId {
	if d.err != nil || len(d.b) == 0 {
		d.fail(ErrTruncated)
		return ExpandedNodeId{}
	}
	flags := d.ReadByte()
	hasURI := flags&expandedNodeIDFlagNamespaceURI != 0
	hasServerIndex := flags&expandedNodeIDFlagServerIndex != 0
	format := flags &^ (expandedNodeIDFlagNamespaceURI | expandedNodeIDFlagServerIndex)

	id := d.readNodeIdBody(format)
	x := ExpandedNodeId{NodeID: id}
	if hasURI {
		x.NamespaceURI = d.ReadString().String()
	}
	if hasServerIndex {
		x.ServerIndex = d.ReadUint32()
	}
	return x
}
