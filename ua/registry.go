package ua

import "reflect"

// Encodable is implemented by every record type that can travel inside
// an ExtensionObject or as a top-level service request/response body:
// a single shared trait instead of the source's inheritance hierarchy
// of request/response records.
type Encodable interface {
	Encode(e *Encoder)
	Decode(d *Decoder)
}

// Constructor allocates a zero-value Encodable for a registered
// encoding id, ready to have Decode called on it.
type Constructor func() Encodable

// EncodingRegistry is a two-way map {record type <-> encoding id},
// partitioned by namespace URI. It supports layering: Extend returns a
// new registry with additional entries on top of the receiver's,
// without mutating the receiver, so a frozen default table stays a
// freely-copyable constant.
type EncodingRegistry struct {
	byType map[reflect.Type]typeEntry
	byID   map[idKey]Constructor
}

type typeEntry struct {
	ns string
	id uint32
}

type idKey struct {
	ns string
	id uint32
}

// NewEncodingRegistry returns an empty registry.
func NewEncodingRegistry() *EncodingRegistry {
	return &EncodingRegistry{
		byType: make(map[reflect.Type]typeEntry),
		byID:   make(map[idKey]Constructor),
	}
}

// Register associates a binary encoding id, scoped to namespaceURI,
// with sample's runtime type and the constructor used to decode it.
// Registration happens once at library initialization or per channel;
// there is no runtime reflection-driven discovery.
func (r *EncodingRegistry) Register(namespaceURI string, id uint32, sample Encodable, ctor Constructor) error {
	t := reflect.TypeOf(sample)
	if _, exists := r.byType[t]; exists {
		return ErrDuplicateType
	}
	key := idKey{namespaceURI, id}
	if _, exists := r.byID[key]; exists {
		return ErrDuplicateEncodingID
	}
	r.byType[t] = typeEntry{ns: namespaceURI, id: id}
	r.byID[key] = ctor
	return nil
}

// MustRegister panics on error; used for the package-level default
// table built at init time.
func (r *EncodingRegistry) MustRegister(namespaceURI string, id uint32, sample Encodable, ctor Constructor) {
	if err := r.Register(namespaceURI, id, sample, ctor); err != nil {
		panic(err)
	}
}

// EncodingIDFor returns the ExpandedNodeId tagging v's registered
// encoding, or ErrNoEncodingID if v's type was never registered.
func (r *EncodingRegistry) EncodingIDFor(v Encodable) (ExpandedNodeId, error) {
	entry, ok := r.byType[reflect.TypeOf(v)]
	if !ok {
		return ExpandedNodeId{}, ErrNoEncodingID
	}
	if entry.ns == "" {
		return NewExpandedNodeId(NewNumericNodeId(0, entry.id)), nil
	}
	return ExpandedNodeId{NodeID: NewNumericNodeId(0, entry.id), NamespaceURI: entry.ns}, nil
}

// New allocates a zero-value Encodable for the encoding id carried by
// x, or ErrUnknownEncodingID if nothing is registered for it.
func (r *EncodingRegistry) New(x ExpandedNodeId) (Encodable, error) {
	ns := x.NamespaceURI
	ctor, ok := r.byID[idKey{ns, x.NodeID.IntID()}]
	if !ok {
		return nil, ErrUnknownEncodingID
	}
	return ctor(), nil
}

// Extend returns a new registry layering extra's entries on top of
// r's: extra's entries win on conflict. Neither r nor extra is
// mutated.
func (r *EncodingRegistry) Extend(extra *EncodingRegistry) *EncodingRegistry {
	out := NewEncodingRegistry()
	for t, e := range r.byType {
		out.byType[t] = e
	}
	for k, c := range r.byID {
		out.byID[k] = c
	}
	for t, e := range extra.byType {
		out.byType[t] = e
	}
	for k, c := range extra.byID {
		out.byID[k] = c
	}
	return out
}
