package opcua

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uasc/security"
)

// getEndpoints asks the just-opened channel for its endpoint
// descriptions, used to pick the EndpointDescription matching the
// configured SecurityPolicy/Mode.
func (c *Client) getEndpoints(ctx context.Context, endpointURL string) ([]*ua.EndpointDescription, error) {
	req := &ua.GetEndpointsRequest{
		RequestHeader: c.requestHeader(),
		EndpointURL:   endpointURL,
	}
	resp := &ua.GetEndpointsResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: GetEndpoints: %w", err)
	}
	return resp.Endpoints, nil
}

// createSession negotiates a new session on the open channel and
// records the SessionId/AuthenticationToken/ServerNonce every later
// request must carry.
func (c *Client) createSession(ctx context.Context, endpointURL string) error {
	nonce, err := newClientNonce()
	if err != nil {
		return fmt.Errorf("opcua: client nonce: %w", err)
	}

	var clientCert []byte
	if own := c.sc.OwnCertificate(); own != nil {
		clientCert = own.DER
	}

	req := &ua.CreateSessionRequest{
		RequestHeader: c.requestHeader(),
		ClientDescription: ua.ApplicationDescription{
			ApplicationURI:  c.cfg.ApplicationURI,
			ProductURI:      c.cfg.ProductURI,
			ApplicationName: ua.LocalizedText{Text: c.cfg.ApplicationName},
			ApplicationType: ua.ApplicationTypeClient,
		},
		EndpointURL:             endpointURL,
		SessionName:             c.cfg.ApplicationName,
		ClientNonce:             nonce,
		ClientCertificate:       clientCert,
		RequestedSessionTimeout: float64(c.cfg.SessionTimeout / time.Millisecond),
		MaxResponseMessageSize:  c.cfg.ChannelConfig.MaxMessageSize,
	}
	resp := &ua.CreateSessionResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return fmt.Errorf("opcua: CreateSession: %w", err)
	}

	if err := c.verifyServerSession(resp, clientCert, nonce); err != nil {
		return err
	}

	c.mu.Lock()
	c.sessionID = resp.SessionID
	c.authToken = resp.AuthenticationToken
	c.serverNonce = resp.ServerNonce
	c.mu.Unlock()
	return nil
}

// verifyServerSession checks that the server answering CreateSession is
// the same one the endpoint description named and that it can sign
// with that certificate's private key: ServerCertificate must match
// the selected EndpointDescription, and ServerSignature must verify
// over (clientCertificate || clientNonce) using ServerCertificate's
// public key. Skipped entirely under PolicyNone, where there is no
// certificate to check.
func (c *Client) verifyServerSession(resp *ua.CreateSessionResponse, clientCert, clientNonce []byte) error {
	policy := c.sc.Policy()
	if policy.URI == security.PolicyNone {
		return nil
	}
	if c.selectedEndpoint != nil && len(c.selectedEndpoint.ServerCertificate) > 0 {
		if !bytes.Equal(resp.ServerCertificate, c.selectedEndpoint.ServerCertificate) {
			return fmt.Errorf("opcua: CreateSessionResponse server certificate does not match the selected endpoint")
		}
	}
	cert, err := x509.ParseCertificate(resp.ServerCertificate)
	if err != nil {
		return fmt.Errorf("opcua: parse server certificate: %w", err)
	}
	signed := append(append([]byte{}, clientCert...), clientNonce...)
	if err := policy.RSAVerify(cert, signed, resp.ServerSignature.Signature); err != nil {
		return fmt.Errorf("opcua: server signature verification failed: %w", err)
	}
	return nil
}

// activateSession proves ownership of the channel's key material and
// presents the configured Identity.
func (c *Client) activateSession(ctx context.Context, ep *ua.EndpointDescription) error {
	identity := c.cfg.Identity
	policy, ok := identity.SelectPolicy(ep.UserIdentityTokens)
	if !ok {
		return ErrNoUserPolicy
	}
	c.mu.Lock()
	nonce := c.serverNonce
	c.mu.Unlock()

	token, err := identity.Token(policy, nonce)
	if err != nil {
		return fmt.Errorf("opcua: build identity token: %w", err)
	}
	if err := c.encryptUserToken(token, nonce); err != nil {
		return fmt.Errorf("opcua: encrypt identity token: %w", err)
	}
	tokenObj, err := ua.NewExtensionObject(c.registry, token)
	if err != nil {
		return fmt.Errorf("opcua: wrap identity token: %w", err)
	}

	clientSig, err := c.clientSignature(nonce)
	if err != nil {
		return fmt.Errorf("opcua: client signature: %w", err)
	}

	var userTokenSig ua.SignatureData
	if signer, ok := identity.(TokenSigner); ok {
		var serverCert []byte
		if peer := c.sc.PeerCertificate(); peer != nil {
			serverCert = peer.Raw
		}
		userTokenSig, err = signer.SignToken(c.sc.Policy(), serverCert, nonce)
		if err != nil {
			return fmt.Errorf("opcua: sign user identity token: %w", err)
		}
	}

	req := &ua.ActivateSessionRequest{
		RequestHeader:      c.requestHeader(),
		ClientSignature:    clientSig,
		UserIdentityToken:  tokenObj,
		UserTokenSignature: userTokenSig,
	}
	resp := &ua.ActivateSessionResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return fmt.Errorf("opcua: ActivateSession: %w", err)
	}

	c.mu.Lock()
	c.serverNonce = resp.ServerNonce
	c.mu.Unlock()
	return nil
}

// encryptUserToken encrypts a UserNameIdentityToken's password in
// place against the server certificate's public key, per Part 4
// 5.6.3.2: the secret is written as a length-prefixed ByteString with
// serverNonce appended, then RSA-encrypted whole under the channel's
// SecurityPolicy. Left untouched under PolicyNone, where the
// EncryptionAlgorithm field stays empty and the password travels as
// plain UTF-8, and for token kinds other than UserNameIdentityToken
// (X509 and Issued tokens carry their own proof-of-possession instead).
func (c *Client) encryptUserToken(token ua.Encodable, serverNonce []byte) error {
	un, ok := token.(*ua.UserNameIdentityToken)
	if !ok {
		return nil
	}
	policy := c.sc.Policy()
	if policy.URI == security.PolicyNone {
		return nil
	}
	peer := c.sc.PeerCertificate()
	if peer == nil {
		return nil
	}
	pub, ok := peer.PublicKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("server certificate public key is not RSA")
	}
	plain := ua.NewEncoder(len(un.Password) + len(serverNonce) + 4).
		WriteByteString(un.Password).Bytes()
	plain = append(plain, serverNonce...)
	enc, err := policy.RSAEncrypt(pub, plain)
	if err != nil {
		return err
	}
	un.Password = enc
	un.EncryptionAlgorithm = policy.AsymmetricEncryptionAlgorithm
	return nil
}

// clientSignature signs the server certificate plus the server nonce
// issued by CreateSession with the client's private key, proving
// possession of the certificate presented in the OPN handshake. Under
// PolicyNone there is no certificate to sign with, so it is left
// empty, matching the UA spec's "no security" exemption.
func (c *Client) clientSignature(serverNonce []byte) (ua.SignatureData, error) {
	own := c.sc.OwnCertificate()
	peer := c.sc.PeerCertificate()
	if own == nil || peer == nil {
		return ua.SignatureData{}, nil
	}
	policy := c.sc.Policy()
	if policy.URI == security.PolicyNone {
		return ua.SignatureData{}, nil
	}
	data := append(append([]byte{}, peer.Raw...), serverNonce...)
	sig, err := policy.RSASign(own.PrivateKey, data)
	if err != nil {
		return ua.SignatureData{}, err
	}
	return ua.SignatureData{Algorithm: policy.AsymmetricSignatureAlgorithm, Signature: sig}, nil
}
