package uasc

import (
	"fmt"
	"reflect"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/ua/id"
)

// EncodeServiceBody writes the TypeId NodeId naming req's binary
// encoding id, followed by req's own fields: the shape every
// top-level service request/response takes on the wire, independent
// of the ExtensionObject envelope used for nested records.
func EncodeServiceBody(e *ua.Encoder, req ua.Encodable) error {
	typeName := serviceTypeName(req)
	n, ok := id.BinaryEncodingID(typeName)
	if !ok {
		return fmt.Errorf("uasc: %s has no registered binary encoding id", typeName)
	}
	e.WriteNodeId(ua.NewNumericNodeId(0, n))
	req.Encode(e)
	return nil
}

// DecodeServiceBody reads the TypeId and decodes the remaining bytes
// into resp. If the server responded with a ServiceFault instead of
// the expected type, it is decoded instead and surfaced as a
// *ua.StatusError error kind.
func DecodeServiceBody(d *ua.Decoder, resp ua.Encodable) error {
	typeID := d.ReadNodeId()
	if faultID, ok := id.BinaryEncodingID("ServiceFault"); ok && typeID.Namespace() == 0 && typeID.IntID() == faultID {
		var sf ua.ServiceFault
		sf.Decode(d)
		if d.Err() != nil {
			return d.Err()
		}
		return &ua.StatusError{Code: sf.ResponseHeader.ServiceResult, Op: "service fault"}
	}
	resp.Decode(d)
	return d.Err()
}

func serviceTypeName(v ua.Encodable) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
