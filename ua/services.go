package ua

import "github.com/rob-gra/go-opcua/ua/id"

// DefaultEncodingRegistry returns a frozen registry covering every
// Encodable defined in this package that travels inside an
// ExtensionObject independent of any particular channel's registry
// (identity tokens, filters, history details, and the service-fault
// envelope). Types whose encoding depends on a Variant body
// (DataValue/Variant-bearing notification and result records) are
// dispatched by the uasc/opcua layer directly against the binary
// encoding ids in ua/id, since decoding them requires the caller's own
// layered registry rather than this one.
func DefaultEncodingRegistry() *EncodingRegistry {
	r := NewEncodingRegistry()

	mustID := func(name string) uint32 {
		n, ok := id.BinaryEncodingID(name)
		if !ok {
			panic("ua: missing binary encoding id for " + name)
		}
		return n
	}

	r.MustRegister("", mustID("AnonymousIdentityToken"), &AnonymousIdentityToken{}, func() Encodable { return &AnonymousIdentityToken{} })
	r.MustRegister("", mustID("UserNameIdentityToken"), &UserNameIdentityToken{}, func() Encodable { return &UserNameIdentityToken{} })
	r.MustRegister("", mustID("X509IdentityToken"), &X509IdentityToken{}, func() Encodable { return &X509IdentityToken{} })
	r.MustRegister("", mustID("IssuedIdentityToken"), &IssuedIdentityToken{}, func() Encodable { return &IssuedIdentityToken{} })

	r.MustRegister("", mustID("ServiceFault"), &ServiceFault{}, func() Encodable { return &ServiceFault{} })

	r.MustRegister("", idReadRawModifiedDetails, &ReadRawModifiedDetails{}, func() Encodable { return &ReadRawModifiedDetails{} })
	r.MustRegister("", idDataChangeFilter, &DataChangeFilter{}, func() Encodable { return &DataChangeFilter{} })

	return r
}

// idReadRawModifiedDetails/idDataChangeFilter are not part of the
// dispatcher's service-message table in ua/id (those are all top-level
// request/response bodies); they're small independent constants kept
// local to this file since nothing outside the registry needs them.
const (
	idReadRawModifiedDetails uint32 = 638
	idDataChangeFilter       uint32 = 722
)
