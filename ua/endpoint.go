package ua

// MessageSecurityMode is orthogonal to SecurityPolicy: None, Sign, or
// SignAndEncrypt.
type MessageSecurityMode int32

const (
	MessageSecurityModeInvalid MessageSecurityMode = iota
	MessageSecurityModeNone
	MessageSecurityModeSign
	MessageSecurityModeSignAndEncrypt
)

// UserTokenType classifies a UserTokenPolicy.
type UserTokenType int32

const (
	UserTokenTypeAnonymous UserTokenType = iota
	UserTokenTypeUserName
	UserTokenTypeCertificate
	UserTokenTypeIssuedToken
)

// UserTokenPolicy describes one identity mechanism an endpoint accepts.
type UserTokenPolicy struct {
	PolicyID          string
	TokenType         UserTokenType
	IssuedTokenType   string
	IssuerEndpointURL string
	SecurityPolicyURI string
}

func (p *UserTokenPolicy) Encode(e *Encoder) {
	e.WriteString(NewString(p.PolicyID))
	e.WriteInt32(int32(p.TokenType))
	e.WriteString(NewString(p.IssuedTokenType))
	e.WriteString(NewString(p.IssuerEndpointURL))
	e.WriteString(NewString(p.SecurityPolicyURI))
}

func (p *UserTokenPolicy) Decode(d *Decoder) {
	p.PolicyID = d.ReadString().String()
	p.TokenType = UserTokenType(d.ReadInt32())
	p.IssuedTokenType = d.ReadString().String()
	p.IssuerEndpointURL = d.ReadString().String()
	p.SecurityPolicyURI = d.ReadString().String()
}

// EndpointDescription is one entry of the server-endpoints list
// returned by GetEndpoints/CreateSession, used to pick the endpoint
// matching the configured security policy and mode.
type EndpointDescription struct {
	EndpointURL         string
	Server              ApplicationDescription
	ServerCertificate   []byte
	SecurityMode        MessageSecurityMode
	SecurityPolicyURI   string
	UserIdentityTokens  []*UserTokenPolicy
	TransportProfileURI string
	SecurityLevel       byte
}

func (ep *EndpointDescription) Encode(e *Encoder) {
	e.WriteString(NewString(ep.EndpointURL))
	ep.Server.Encode(e)
	e.WriteByteString(ep.ServerCertificate)
	e.WriteInt32(int32(ep.SecurityMode))
	e.WriteString(NewString(ep.SecurityPolicyURI))
	e.WriteInt32(int32(len(ep.UserIdentityTokens)))
	for _, t := range ep.UserIdentityTokens {
		t.Encode(e)
	}
	e.WriteString(NewString(ep.TransportProfileURI))
	e.WriteByte(ep.SecurityLevel)
}

func (ep *EndpointDescription) Decode(d *Decoder) {
	ep.EndpointURL = d.ReadString().String()
	ep.Server.Decode(d)
	ep.ServerCertificate = d.ReadByteString()
	ep.SecurityMode = MessageSecurityMode(d.ReadInt32())
	ep.SecurityPolicyURI = d.ReadString().String()
	n := d.ReadInt32()
	if n >= 0 {
		ep.UserIdentityTokens = make([]*UserTokenPolicy, n)
		for i := range ep.UserIdentityTokens {
			p := &UserTokenPolicy{}
			p.Decode(d)
			ep.UserIdentityTokens[i] = p
		}
	}
	ep.TransportProfileURI = d.ReadString().String()
	ep.SecurityLevel = d.ReadByte()
}

// SelectEndpoint picks the first endpoint matching the requested
// security policy and mode, used by Client.Connect to narrow
// GetEndpoints' results down to the one to activate a session against.
func SelectEndpoint(endpoints []*EndpointDescription, policyURI string, mode MessageSecurityMode) (*EndpointDescription, bool) {
	for _, ep := range endpoints {
		if ep.SecurityPolicyURI == policyURI && ep.SecurityMode == mode {
			return ep, true
		}
	}
	return nil, false
}

// SignatureData is a signature/algorithm pair returned in
// CreateSession and used in ActivateSession.
type SignatureData struct {
	Algorithm string
	Signature []byte
}

func (s *SignatureData) Encode(e *Encoder) {
	e.WriteString(NewString(s.Algorithm))
	e.WriteByteString(s.Signature)
}

func (s *SignatureData) Decode(d *Decoder) {
	s.Algorithm = d.ReadString().String()
	s.Signature = d.ReadByteString()
}
