package opcua

import (
	"crypto/rsa"
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uasc/security"
)

// Identity selects a UserIdentityToken policy from an endpoint's
// UserIdentityTokens and builds the token to present in
// ActivateSession.
type Identity interface {
	// SelectPolicy picks the policy this identity can satisfy out of
	// policies, or false if none fit.
	SelectPolicy(policies []*ua.UserTokenPolicy) (ua.UserTokenPolicy, bool)
	// Token builds the token body for the chosen policy. serverNonce
	// is the ServerNonce from CreateSessionResponse; the identities in
	// this package ignore it, since the client encrypts a password
	// token itself (encryptUserToken) after Token returns.
	Token(policy ua.UserTokenPolicy, serverNonce []byte) (ua.Encodable, error)
}

// TokenSigner is implemented by identities whose UserIdentityToken must
// be backed by a proof-of-possession signature carried separately in
// ActivateSessionRequest.UserTokenSignature (certificate-based
// identities; password and anonymous identities need no such proof).
type TokenSigner interface {
	SignToken(policy security.Policy, serverCertificate, serverNonce []byte) (ua.SignatureData, error)
}

// AnonymousIdentity authenticates with no credentials, the default
// for discovery and unsecured servers.
type AnonymousIdentity struct{}

func (AnonymousIdentity) SelectPolicy(policies []*ua.UserTokenPolicy) (ua.UserTokenPolicy, bool) {
	for _, p := range policies {
		if p.TokenType == ua.UserTokenTypeAnonymous {
			return *p, true
		}
	}
	return ua.UserTokenPolicy{}, false
}

func (AnonymousIdentity) Token(policy ua.UserTokenPolicy, _ []byte) (ua.Encodable, error) {
	return &ua.AnonymousIdentityToken{PolicyID: policy.PolicyID}, nil
}

// UserNameIdentity authenticates with a username and password. Token
// returns the password in cleartext; the client's activateSession
// encrypts it (encryptUserToken) against the endpoint's security policy before sending, per the
// session-layer responsibility UserNameIdentityToken documents.
type UserNameIdentity struct {
	Username string
	Password string
}

func (u UserNameIdentity) SelectPolicy(policies []*ua.UserTokenPolicy) (ua.UserTokenPolicy, bool) {
	for _, p := range policies {
		if p.TokenType == ua.UserTokenTypeUserName {
			return *p, true
		}
	}
	return ua.UserTokenPolicy{}, false
}

func (u UserNameIdentity) Token(policy ua.UserTokenPolicy, _ []byte) (ua.Encodable, error) {
	if u.Username == "" {
		return nil, fmt.Errorf("opcua: UserNameIdentity requires a non-empty Username")
	}
	return &ua.UserNameIdentityToken{
		PolicyID: policy.PolicyID,
		UserName: u.Username,
		Password: []byte(u.Password),
	}, nil
}

// X509Identity authenticates with an application instance certificate.
// Unlike UserNameIdentity's encrypted secret, proof of possession
// travels separately: SignToken signs (serverCertificate||serverNonce)
// with PrivateKey for ActivateSessionRequest.UserTokenSignature.
type X509Identity struct {
	Certificate []byte // DER-encoded X.509 certificate
	PrivateKey  *rsa.PrivateKey
}

func (x X509Identity) SelectPolicy(policies []*ua.UserTokenPolicy) (ua.UserTokenPolicy, bool) {
	for _, p := range policies {
		if p.TokenType == ua.UserTokenTypeCertificate {
			return *p, true
		}
	}
	return ua.UserTokenPolicy{}, false
}

func (x X509Identity) Token(policy ua.UserTokenPolicy, _ []byte) (ua.Encodable, error) {
	if len(x.Certificate) == 0 {
		return nil, fmt.Errorf("opcua: X509Identity requires a Certificate")
	}
	return &ua.X509IdentityToken{PolicyID: policy.PolicyID, CertificateData: x.Certificate}, nil
}

func (x X509Identity) SignToken(policy security.Policy, serverCertificate, serverNonce []byte) (ua.SignatureData, error) {
	data := append(append([]byte{}, serverCertificate...), serverNonce...)
	sig, err := policy.RSASign(x.PrivateKey, data)
	if err != nil {
		return ua.SignatureData{}, err
	}
	return ua.SignatureData{Algorithm: policy.AsymmetricSignatureAlgorithm, Signature: sig}, nil
}
