package ua

// GetEndpointsRequest asks a server (or a discovery endpoint) for the
// endpoints it exposes.
type GetEndpointsRequest struct {
	RequestHeader  RequestHeader
	EndpointURL    string
	LocaleIDs      []String
	ProfileURIs    []String
}

func (r *GetEndpointsRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteString(NewString(r.EndpointURL))
	e.WriteStringArray(r.LocaleIDs)
	e.WriteStringArray(r.ProfileURIs)
}

func (r *GetEndpointsRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.EndpointURL = d.ReadString().String()
	r.LocaleIDs = d.ReadStringArray()
	r.ProfileURIs = d.ReadStringArray()
}

// GetEndpointsResponse lists the server's endpoint descriptions.
type GetEndpointsResponse struct {
	ResponseHeader ResponseHeader
	Endpoints      []*EndpointDescription
}

func (r *GetEndpointsResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Endpoints)))
	for _, ep := range r.Endpoints {
		ep.Encode(e)
	}
}

func (r *GetEndpointsResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Endpoints = make([]*EndpointDescription, n)
		for i := range r.Endpoints {
			ep := &EndpointDescription{}
			ep.Decode(d)
			r.Endpoints[i] = ep
		}
	}
}

// CreateSessionRequest negotiates a new session against an already
// open SecureChannel.
type CreateSessionRequest struct {
	RequestHeader           RequestHeader
	ClientDescription       ApplicationDescription
	ServerURI               string
	EndpointURL             string
	SessionName             string
	ClientNonce             []byte
	ClientCertificate       []byte
	RequestedSessionTimeout float64
	MaxResponseMessageSize  uint32
}

func (r *CreateSessionRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	r.ClientDescription.Encode(e)
	e.WriteString(NewString(r.ServerURI))
	e.WriteString(NewString(r.EndpointURL))
	e.WriteString(NewString(r.SessionName))
	e.WriteByteString(r.ClientNonce)
	e.WriteByteString(r.ClientCertificate)
	e.WriteFloat64(r.RequestedSessionTimeout)
	e.WriteUint32(r.MaxResponseMessageSize)
}

func (r *CreateSessionRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.ClientDescription.Decode(d)
	r.ServerURI = d.ReadString().String()
	r.EndpointURL = d.ReadString().String()
	r.SessionName = d.ReadString().String()
	r.ClientNonce = d.ReadByteString()
	r.ClientCertificate = d.ReadByteString()
	r.RequestedSessionTimeout = d.ReadFloat64()
	r.MaxResponseMessageSize = d.ReadUint32()
}

// CreateSessionResponse returns the session id/auth token pair that
// every subsequent request on this session must echo.
type CreateSessionResponse struct {
	ResponseHeader          ResponseHeader
	SessionID               NodeId
	AuthenticationToken     NodeId
	RevisedSessionTimeout   float64
	ServerNonce             []byte
	ServerCertificate       []byte
	ServerEndpoints         []*EndpointDescription
	ServerSoftwareCertificates []ExtensionObject
	ServerSignature         SignatureData
	MaxRequestMessageSize   uint32
}

func (r *CreateSessionResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteNodeId(r.SessionID)
	e.WriteNodeId(r.AuthenticationToken)
	e.WriteFloat64(r.RevisedSessionTimeout)
	e.WriteByteString(r.ServerNonce)
	e.WriteByteString(r.ServerCertificate)
	e.WriteInt32(int32(len(r.ServerEndpoints)))
	for _, ep := range r.ServerEndpoints {
		ep.Encode(e)
	}
	e.WriteInt32(int32(len(r.ServerSoftwareCertificates)))
	for _, c := range r.ServerSoftwareCertificates {
		e.WriteExtensionObject(c)
	}
	r.ServerSignature.Encode(e)
	e.WriteUint32(r.MaxRequestMessageSize)
}

func (r *CreateSessionResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.SessionID = d.ReadNodeId()
	r.AuthenticationToken = d.ReadNodeId()
	r.RevisedSessionTimeout = d.ReadFloat64()
	r.ServerNonce = d.ReadByteString()
	r.ServerCertificate = d.ReadByteString()
	n := d.ReadInt32()
	if n >= 0 {
		r.ServerEndpoints = make([]*EndpointDescription, n)
		for i := range r.ServerEndpoints {
			ep := &EndpointDescription{}
			ep.Decode(d)
			r.ServerEndpoints[i] = ep
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.ServerSoftwareCertificates = make([]ExtensionObject, m)
		for i := range r.ServerSoftwareCertificates {
			r.ServerSoftwareCertificates[i] = d.ReadExtensionObject(nil)
		}
	}
	r.ServerSignature.Decode(d)
	r.MaxRequestMessageSize = d.ReadUint32()
}

// UserIdentityToken wraps one of the identity-token kinds inside the
// ExtensionObject envelope ActivateSession expects.
type UserIdentityToken struct {
	Token ExtensionObject
}

// ActivateSessionRequest proves the client owns the channel's key
// material (ClientSignature) and presents an identity token.
type ActivateSessionRequest struct {
	RequestHeader          RequestHeader
	ClientSignature        SignatureData
	ClientSoftwareCertificates []ExtensionObject
	LocaleIDs              []String
	UserIdentityToken      ExtensionObject
	UserTokenSignature     SignatureData
}

func (r *ActivateSessionRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	r.ClientSignature.Encode(e)
	e.WriteInt32(int32(len(r.ClientSoftwareCertificates)))
	for _, c := range r.ClientSoftwareCertificates {
		e.WriteExtensionObject(c)
	}
	e.WriteStringArray(r.LocaleIDs)
	e.WriteExtensionObject(r.UserIdentityToken)
	r.UserTokenSignature.Encode(e)
}

func (r *ActivateSessionRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.ClientSignature.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.ClientSoftwareCertificates = make([]ExtensionObject, n)
		for i := range r.ClientSoftwareCertificates {
			r.ClientSoftwareCertificates[i] = d.ReadExtensionObject(nil)
		}
	}
	r.LocaleIDs = d.ReadStringArray()
	r.UserIdentityToken = d.ReadExtensionObject(nil)
	r.UserTokenSignature.Decode(d)
}

// ActivateSessionResponse returns a fresh server nonce used to key the
// next renewal signature.
type ActivateSessionResponse struct {
	ResponseHeader ResponseHeader
	ServerNonce    []byte
	Results        []StatusCode
	DiagnosticInfos []*DiagnosticInfo
}

func (r *ActivateSessionResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteByteString(r.ServerNonce)
	e.WriteInt32(int32(len(r.Results)))
	for _, s := range r.Results {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *ActivateSessionResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.ServerNonce = d.ReadByteString()
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

// CloseSessionRequest ends a session; DeleteSubscriptions controls
// whether the server also tears down the session's subscriptions.
type CloseSessionRequest struct {
	RequestHeader      RequestHeader
	DeleteSubscriptions bool
}

func (r *CloseSessionRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteBool(r.DeleteSubscriptions)
}

func (r *CloseSessionRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.DeleteSubscriptions = d.ReadBool()
}

// CloseSessionResponse has no body beyond the response header.
type CloseSessionResponse struct {
	ResponseHeader ResponseHeader
}

func (r *CloseSessionResponse) Encode(e *Encoder) { r.ResponseHeader.Encode(e) }
func (r *CloseSessionResponse) Decode(d *Decoder) { r.ResponseHeader.Decode(d) }

func (r *GetEndpointsResponse) GetResponseHeader() *ResponseHeader    { return &r.ResponseHeader }
func (r *CreateSessionResponse) GetResponseHeader() *ResponseHeader   { return &r.ResponseHeader }
func (r *ActivateSessionResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
func (r *CloseSessionResponse) GetResponseHeader() *ResponseHeader    { return &r.ResponseHeader }
