package ua

// ServiceFault is returned in place of a service's normal response
// body when the whole request fails; ResponseHeader.ServiceResult
// carries the reason.
type ServiceFault struct {
	ResponseHeader ResponseHeader
}

func (f *ServiceFault) Encode(e *Encoder) { f.ResponseHeader.Encode(e) }
func (f *ServiceFault) Decode(d *Decoder) { f.ResponseHeader.Decode(d) }

func (f *ServiceFault) GetResponseHeader() *ResponseHeader { return &f.ResponseHeader }
