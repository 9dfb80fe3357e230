package ua

import "time"

// RequestHeader is prepended to every service request body. Every
// outgoing request carries the negotiated timeout hint here.
type RequestHeader struct {
	AuthenticationToken NodeId
	Timestamp           time.Time
	RequestHandle       uint32
	ReturnDiagnostics    uint32
	AuditEntryID         String
	TimeoutHint          uint32 // milliseconds; 0 means no timeout
	AdditionalHeader      ExtensionObject
}

func (h *RequestHeader) Encode(e *Encoder) {
	e.WriteNodeId(h.AuthenticationToken)
	e.WriteDateTime(h.Timestamp)
	e.WriteUint32(h.RequestHandle)
	e.WriteUint32(h.ReturnDiagnostics)
	e.WriteString(h.AuditEntryID)
	e.WriteUint32(h.TimeoutHint)
	e.WriteExtensionObject(h.AdditionalHeader)
}

func (h *RequestHeader) Decode(d *Decoder) {
	h.AuthenticationToken = d.ReadNodeId()
	h.Timestamp = d.ReadDateTime()
	h.RequestHandle = d.ReadUint32()
	h.ReturnDiagnostics = d.ReadUint32()
	h.AuditEntryID = d.ReadString()
	h.TimeoutHint = d.ReadUint32()
	h.AdditionalHeader = d.ReadExtensionObject(nil)
}

// ResponseHeader is prepended to every service response body. A
// Bad ServiceResult surfaces to the caller as a *StatusError.
type ResponseHeader struct {
	Timestamp         time.Time
	RequestHandle     uint32
	ServiceResult     StatusCode
	ServiceDiagnostics *DiagnosticInfo
	StringTable        []String
	AdditionalHeader    ExtensionObject
}

func (h *ResponseHeader) Encode(e *Encoder) {
	e.WriteDateTime(h.Timestamp)
	e.WriteUint32(h.RequestHandle)
	e.WriteStatusCode(h.ServiceResult)
	e.WriteDiagnosticInfo(h.ServiceDiagnostics)
	e.WriteStringArray(h.StringTable)
	e.WriteExtensionObject(h.AdditionalHeader)
}

func (h *ResponseHeader) Decode(d *Decoder) {
	h.Timestamp = d.ReadDateTime()
	h.RequestHandle = d.ReadUint32()
	h.ServiceResult = d.ReadStatusCode()
	h.ServiceDiagnostics = d.ReadDiagnosticInfo()
	h.StringTable = d.ReadStringArray()
	h.AdditionalHeader = d.ReadExtensionObject(nil)
}

// HasResponseHeader is implemented by every top-level service response
// type, giving callers generic access to ServiceResult without a type
// switch over every service. Named GetResponseHeader, not
// ResponseHeader, since every implementer already has a field of that
// name.
type HasResponseHeader interface {
	GetResponseHeader() *ResponseHeader
}
