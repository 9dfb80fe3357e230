package ua

// SecurityTokenRequestType distinguishes an initial channel open from
// a renewal.
type SecurityTokenRequestType int32

const (
	SecurityTokenRequestIssue SecurityTokenRequestType = iota
	SecurityTokenRequestRenew
)

// ChannelSecurityToken describes one symmetric-key token: its id,
// creation time and lifetime.
type ChannelSecurityToken struct {
	ChannelID       uint32
	TokenID         uint32
	CreatedAt       int64 // 100ns ticks since 1601, matches wire DateTime
	RevisedLifetime uint32
}

func (t *ChannelSecurityToken) Encode(e *Encoder) {
	e.WriteUint32(t.ChannelID)
	e.WriteUint32(t.TokenID)
	e.WriteInt64(t.CreatedAt)
	e.WriteUint32(t.RevisedLifetime)
}

func (t *ChannelSecurityToken) Decode(d *Decoder) {
	t.ChannelID = d.ReadUint32()
	t.TokenID = d.ReadUint32()
	t.CreatedAt = d.ReadInt64()
	t.RevisedLifetime = d.ReadUint32()
}

// OpenSecureChannelRequest is the OPN service body, sent after the asymmetric handshake headers.
type OpenSecureChannelRequest struct {
	RequestHeader   RequestHeader
	ClientProtocolVersion uint32
	RequestType     SecurityTokenRequestType
	SecurityMode    MessageSecurityMode
	ClientNonce     []byte
	RequestedLifetime uint32
}

func (r *OpenSecureChannelRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32(r.ClientProtocolVersion)
	e.WriteInt32(int32(r.RequestType))
	e.WriteInt32(int32(r.SecurityMode))
	e.WriteByteString(r.ClientNonce)
	e.WriteUint32(r.RequestedLifetime)
}

func (r *OpenSecureChannelRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.ClientProtocolVersion = d.ReadUint32()
	r.RequestType = SecurityTokenRequestType(d.ReadInt32())
	r.SecurityMode = MessageSecurityMode(d.ReadInt32())
	r.ClientNonce = d.ReadByteString()
	r.RequestedLifetime = d.ReadUint32()
}

// OpenSecureChannelResponse returns the assigned channel id and token.
type OpenSecureChannelResponse struct {
	ResponseHeader ResponseHeader
	ServerProtocolVersion uint32
	SecurityToken  ChannelSecurityToken
	ServerNonce    []byte
}

func (r *OpenSecureChannelResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteUint32(r.ServerProtocolVersion)
	r.SecurityToken.Encode(e)
	e.WriteByteString(r.ServerNonce)
}

func (r *OpenSecureChannelResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.ServerProtocolVersion = d.ReadUint32()
	r.SecurityToken.Decode(d)
	r.ServerNonce = d.ReadByteString()
}

// CloseSecureChannelRequest has no body beyond the request header.
type CloseSecureChannelRequest struct {
	RequestHeader RequestHeader
}

func (r *CloseSecureChannelRequest) Encode(e *Encoder) { r.RequestHeader.Encode(e) }
func (r *CloseSecureChannelRequest) Decode(d *Decoder) { r.RequestHeader.Decode(d) }

// CloseSecureChannelResponse has no body beyond the response header.
type CloseSecureChannelResponse struct {
	ResponseHeader ResponseHeader
}

func (r *CloseSecureChannelResponse) Encode(e *Encoder) { r.ResponseHeader.Encode(e) }
func (r *CloseSecureChannelResponse) Decode(d *Decoder) { r.ResponseHeader.Decode(d) }

func (r *OpenSecureChannelResponse) GetResponseHeader() *ResponseHeader  { return &r.ResponseHeader }
func (r *CloseSecureChannelResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
