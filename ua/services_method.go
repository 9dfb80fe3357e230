package ua

// CallMethodRequest invokes one method node with positional input
// arguments.
type CallMethodRequest struct {
	ObjectID       NodeId
	MethodID       NodeId
	InputArguments []Variant
	registry       *EncodingRegistry
}

// NewCallMethodRequest binds the registry used to encode InputArguments.
func NewCallMethodRequest(r *EncodingRegistry) *CallMethodRequest {
	return &CallMethodRequest{registry: r}
}

func (c *CallMethodRequest) Encode(e *Encoder) {
	e.WriteNodeId(c.ObjectID)
	e.WriteNodeId(c.MethodID)
	e.WriteInt32(int32(len(c.InputArguments)))
	for _, v := range c.InputArguments {
		e.WriteVariant(c.registry, v)
	}
}

func (c *CallMethodRequest) Decode(d *Decoder) {
	c.ObjectID = d.ReadNodeId()
	c.MethodID = d.ReadNodeId()
	n := d.ReadInt32()
	if n >= 0 {
		c.InputArguments = make([]Variant, n)
		for i := range c.InputArguments {
			c.InputArguments[i] = d.ReadVariant(c.registry)
		}
	}
}

// CallMethodResult returns the method's status and output arguments,
// plus per-argument status/diagnostics for input validation failures.
type CallMethodResult struct {
	StatusCode          StatusCode
	InputArgumentResults []StatusCode
	InputArgumentDiagnosticInfos []*DiagnosticInfo
	OutputArguments     []Variant
	registry            *EncodingRegistry
}

// NewCallMethodResult binds the registry used to decode OutputArguments.
func NewCallMethodResult(r *EncodingRegistry) *CallMethodResult {
	return &CallMethodResult{registry: r}
}

func (c *CallMethodResult) Encode(e *Encoder) {
	e.WriteStatusCode(c.StatusCode)
	e.WriteInt32(int32(len(c.InputArgumentResults)))
	for _, s := range c.InputArgumentResults {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(c.InputArgumentDiagnosticInfos)))
	for _, di := range c.InputArgumentDiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
	e.WriteInt32(int32(len(c.OutputArguments)))
	for _, v := range c.OutputArguments {
		e.WriteVariant(c.registry, v)
	}
}

func (c *CallMethodResult) Decode(d *Decoder) {
	c.StatusCode = d.ReadStatusCode()
	n := d.ReadInt32()
	if n >= 0 {
		c.InputArgumentResults = make([]StatusCode, n)
		for i := range c.InputArgumentResults {
			c.InputArgumentResults[i] = d.ReadStatusCode()
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		c.InputArgumentDiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range c.InputArgumentDiagnosticInfos {
			c.InputArgumentDiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
	k := d.ReadInt32()
	if k >= 0 {
		c.OutputArguments = make([]Variant, k)
		for i := range c.OutputArguments {
			c.OutputArguments[i] = d.ReadVariant(c.registry)
		}
	}
}

// CallRequest invokes a batch of methods in one round trip.
type CallRequest struct {
	RequestHeader     RequestHeader
	MethodsToCall     []*CallMethodRequest
}

func (c *CallRequest) Encode(e *Encoder) {
	c.RequestHeader.Encode(e)
	e.WriteInt32(int32(len(c.MethodsToCall)))
	for _, m := range c.MethodsToCall {
		m.Encode(e)
	}
}

func (c *CallRequest) Decode(d *Decoder) {
	c.RequestHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		c.MethodsToCall = make([]*CallMethodRequest, n)
		for i := range c.MethodsToCall {
			c.MethodsToCall[i] = &CallMethodRequest{}
		}
		for i := range c.MethodsToCall {
			c.MethodsToCall[i].Decode(d)
		}
	}
}

// CallResponse carries one CallMethodResult per CallMethodRequest in
// request order.
type CallResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*CallMethodResult
	DiagnosticInfos []*DiagnosticInfo
	registry        *EncodingRegistry
}

// NewCallResponse binds the registry used to decode each result's
// OutputArguments.
func NewCallResponse(r *EncodingRegistry) *CallResponse { return &CallResponse{registry: r} }

func (c *CallResponse) Encode(e *Encoder) {
	c.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(c.Results)))
	for _, res := range c.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(c.DiagnosticInfos)))
	for _, di := range c.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (c *CallResponse) Decode(d *Decoder) {
	c.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		c.Results = make([]*CallMethodResult, n)
		for i := range c.Results {
			c.Results[i] = NewCallMethodResult(c.registry)
			c.Results[i].Decode(d)
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		c.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range c.DiagnosticInfos {
			c.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

func (r *CallResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
