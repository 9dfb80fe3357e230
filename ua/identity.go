package ua

// AnonymousIdentityToken is used when the client authenticates with no
// credentials.
type AnonymousIdentityToken struct {
	PolicyID string
}

func (t *AnonymousIdentityToken) Encode(e *Encoder) { e.WriteString(NewString(t.PolicyID)) }
func (t *AnonymousIdentityToken) Decode(d *Decoder) { t.PolicyID = d.ReadString().String() }

// UserNameIdentityToken carries a username/password credential; the
// password is filled in encrypted (per the endpoint's security policy)
// by the session layer before ActivateSession is sent.
type UserNameIdentityToken struct {
	PolicyID            string
	UserName            string
	Password            []byte
	EncryptionAlgorithm string
}

func (t *UserNameIdentityToken) Encode(e *Encoder) {
	e.WriteString(NewString(t.PolicyID))
	e.WriteString(NewString(t.UserName))
	e.WriteByteString(t.Password)
	e.WriteString(NewString(t.EncryptionAlgorithm))
}

func (t *UserNameIdentityToken) Decode(d *Decoder) {
	t.PolicyID = d.ReadString().String()
	t.UserName = d.ReadString().String()
	t.Password = d.ReadByteString()
	t.EncryptionAlgorithm = d.ReadString().String()
}

// X509IdentityToken authenticates with a certificate; the
// corresponding private-key signature travels alongside in
// ActivateSessionRequest.UserTokenSignature.
type X509IdentityToken struct {
	PolicyID        string
	CertificateData []byte
}

func (t *X509IdentityToken) Encode(e *Encoder) {
	e.WriteString(NewString(t.PolicyID))
	e.WriteByteString(t.CertificateData)
}

func (t *X509IdentityToken) Decode(d *Decoder) {
	t.PolicyID = d.ReadString().String()
	t.CertificateData = d.ReadByteString()
}

// IssuedIdentityToken authenticates with an opaque token (e.g. a
// WS-SecureConversation or OAuth2 token) issued out of band.
type IssuedIdentityToken struct {
	PolicyID            string
	TokenData           []byte
	EncryptionAlgorithm string
}

func (t *IssuedIdentityToken) Encode(e *Encoder) {
	e.WriteString(NewString(t.PolicyID))
	e.WriteByteString(t.TokenData)
	e.WriteString(NewString(t.EncryptionAlgorithm))
}

func (t *IssuedIdentityToken) Decode(d *Decoder) {
	t.PolicyID = d.ReadString().String()
	t.TokenData = d.ReadByteString()
	t.EncryptionAlgorithm = d.ReadString().String()
}
