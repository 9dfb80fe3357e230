package uasc

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"sync"
	"time"

	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uacp"
	"github.com/rob-gra/go-opcua/uasc/pki"
	"github.com/rob-gra/go-opcua/uasc/security"
)

const nonceLength = 32

// sequenceRolloverThreshold is the point beyond which an inbound
// sequence number is allowed to wrap back toward 0 rather than being
// treated as out-of-order and 4.2
const sequenceRolloverThreshold = 1 << 31

// securityToken pairs one ChannelSecurityToken with the symmetric keys
// derived for it in both directions.
type securityToken struct {
	ua.ChannelSecurityToken
	sendKeys security.SymmetricKeys // sign/encrypt what this client sends
	recvKeys security.SymmetricKeys // verify/decrypt what the server sends
}

// SecureChannel owns one logical secure channel's cryptographic state
// and chunk framing atop a uacp.Conn: the asymmetric handshake on OPN,
// symmetric sign/encrypt on MSG/CLO, sequence-number monotonicity and
// token rotation.
type SecureChannel struct {
	Conn   *uacp.Conn
	cfg    Config
	policy security.Policy
	certs  pki.CertificateStore
	log    clog.Clog

	endpointURL string
	ownCert     *pki.ApplicationCertificate
	peerCert    *x509.Certificate
	peerCertRaw []byte

	mu        sync.Mutex
	channelID uint32
	current   *securityToken
	previous  *securityToken

	localNonce  []byte
	remoteNonce []byte

	sendSeqMu  sync.Mutex
	sendSeqNum uint32

	wmu sync.Mutex // serializes chunk writes; "writer lock"

	recvMu      sync.Mutex
	recvSeqNum  uint32
	haveRecvSeq bool

	reassemblyMu sync.Mutex
	reassembly   map[uint32][]byte
}

// NewSecureChannel constructs a SecureChannel bound to conn, ready to
// run the OPN handshake once Open is called.
func NewSecureChannel(conn *uacp.Conn, endpointURL string, cfg Config, certs pki.CertificateStore, log clog.Clog) (*SecureChannel, error) {
	policy, err := security.Lookup(cfg.SecurityPolicyURI)
	if err != nil {
		return nil, err
	}
	if policy.URI == security.PolicyNone && cfg.SecurityMode != ua.MessageSecurityModeNone {
		return nil, fmt.Errorf("uasc: SecurityMode must be None when SecurityPolicy is None")
	}
	if policy.URI != security.PolicyNone && cfg.SecurityMode == ua.MessageSecurityModeNone {
		return nil, fmt.Errorf("uasc: SecurityMode None is only valid with SecurityPolicy None")
	}
	return &SecureChannel{
		Conn:        conn,
		cfg:         cfg,
		policy:      policy,
		certs:       certs,
		log:         log,
		endpointURL: endpointURL,
		reassembly:  make(map[uint32][]byte),
	}, nil
}

// ChannelID returns the server-assigned channel id, valid once Open
// has completed.
func (c *SecureChannel) ChannelID() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelID
}

// OwnCertificate returns the application instance certificate
// presented during the OPN handshake, or nil under PolicyNone.
func (c *SecureChannel) OwnCertificate() *pki.ApplicationCertificate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownCert
}

// PeerCertificate returns the server certificate received during the
// OPN handshake, or nil under PolicyNone.
func (c *SecureChannel) PeerCertificate() *x509.Certificate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peerCert
}

// Policy returns the negotiated SecurityPolicy, used by the session
// layer to name ClientSignature/UserTokenSignature's algorithm.
func (c *SecureChannel) Policy() security.Policy {
	return c.policy
}

func newNonce(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Open performs the asymmetric OPN handshake: embeds the client's
// certificate chain and a fresh nonce, and derives the first pair of
// symmetric tokens from the exchanged nonces. Verifying the server's
// nonce-backed signature against the endpoint description belongs to
// the session layer.
func (c *SecureChannel) Open(requestID uint32) (*ua.OpenSecureChannelResponse, error) {
	return c.openSecureChannel(requestID, ua.SecurityTokenRequestIssue)
}

// Renew issues a renewal OPN before the current token's lifetime
// expires. Both the previous and new tokens remain valid for
// verification until the first MSG chunk proves the new one is in
// use.
func (c *SecureChannel) Renew(requestID uint32) (*ua.OpenSecureChannelResponse, error) {
	return c.openSecureChannel(requestID, ua.SecurityTokenRequestRenew)
}

func (c *SecureChannel) openSecureChannel(requestID uint32, kind ua.SecurityTokenRequestType) (*ua.OpenSecureChannelResponse, error) {
	if c.policy.URI != security.PolicyNone && c.ownCert == nil {
		own, err := c.certs.Own()
		if err != nil {
			return nil, fmt.Errorf("uasc: load own certificate: %w", err)
		}
		c.ownCert = own
	}
	nonce, err := newNonce(nonceLength)
	if err != nil {
		return nil, err
	}
	c.localNonce = nonce

	req := &ua.OpenSecureChannelRequest{
		RequestHeader: ua.RequestHeader{
			Timestamp:     time.Now(),
			RequestHandle: requestID,
			TimeoutHint:   uint32(c.cfg.RequestedLifetime / time.Millisecond),
		},
		ClientProtocolVersion: uacp.DefaultProtocolVersion,
		RequestType:           kind,
		SecurityMode:          c.cfg.SecurityMode,
		ClientNonce:           c.localNonce,
		RequestedLifetime:     uint32(c.cfg.RequestedLifetime / time.Millisecond),
	}
	resp, err := c.sendOPN(requestID, req)
	if err != nil {
		return nil, err
	}
	c.adoptToken(resp.SecurityToken, resp.ServerNonce)
	return resp, nil
}

// adoptToken derives the symmetric keys for a freshly issued or
// renewed token and rotates current into previous: both remain valid
// for verification until the first MSG proves the new one is in use.
func (c *SecureChannel) adoptToken(token ua.ChannelSecurityToken, serverNonce []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channelID = token.ChannelID
	c.remoteNonce = serverNonce

	tok := &securityToken{ChannelSecurityToken: token}
	if c.policy.URI != security.PolicyNone {
		tok.sendKeys = c.policy.DeriveKeys(c.remoteNonce, c.localNonce)
		tok.recvKeys = c.policy.DeriveKeys(c.localNonce, c.remoteNonce)
	}
	if c.current != nil {
		c.previous = c.current
	}
	c.current = tok
}

// RenewDeadline returns when the current token should be proactively
// renewed, per Config.RenewAfterFraction.
func (c *SecureChannel) RenewDeadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return time.Time{}
	}
	lifetime := time.Duration(c.current.RevisedLifetime) * time.Millisecond
	return time.Now().Add(time.Duration(float64(lifetime) * c.cfg.RenewAfterFraction))
}

// Close sends a single-chunk CLO message and closes the transport.
func (c *SecureChannel) Close(requestID uint32, req *ua.CloseSecureChannelRequest) error {
	body := ua.NewEncoder(64)
	if err := EncodeServiceBody(body, req); err != nil {
		return err
	}
	if err := c.sendMSGChunks(uacp.MessageTypeClose, requestID, body.Bytes()); err != nil {
		c.log.Warn("uasc: CLO send failed: %v", err)
	}
	return c.Conn.Close()
}

// sendOPN writes a single, never-chunked asymmetric OPN message and
// waits for the matching OPN response. OPN chunks are always final
// and asymmetrically protected; Close sends CLO on the symmetric path.
func (c *SecureChannel) sendOPN(requestID uint32, req *ua.OpenSecureChannelRequest) (*ua.OpenSecureChannelResponse, error) {
	body := ua.NewEncoder(256)
	if err := EncodeServiceBody(body, req); err != nil {
		return nil, err
	}
	chunk, err := c.buildAsymmetricChunk(requestID, body.Bytes())
	if err != nil {
		return nil, err
	}
	c.wmu.Lock()
	err = c.Conn.WriteChunk(uacp.MessageTypeOpen, uacp.ChunkFinal, chunk)
	c.wmu.Unlock()
	if err != nil {
		return nil, err
	}

	f, err := c.Conn.ReadChunk()
	if err != nil {
		return nil, err
	}
	if f.Type != uacp.MessageTypeOpen {
		return nil, fmt.Errorf("uasc: expected OPN response, got %q", f.Type)
	}
	plain, err := c.openAsymmetricChunk(f.Body)
	if err != nil {
		return nil, err
	}
	d := ua.NewDecoder(plain)
	resp := &ua.OpenSecureChannelResponse{}
	if err := DecodeServiceBody(d, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// buildAsymmetricChunk assembles one OPN chunk: ChannelId +
// AsymmetricSecurityHeader + SequenceHeader + body, RSA-signed and,
// under SignAndEncrypt, RSA-encrypted under the peer certificate's
// public key.
func (c *SecureChannel) buildAsymmetricChunk(requestID uint32, body []byte) ([]byte, error) {
	header := ua.NewEncoder(len(body) + 512)
	header.WriteUint32(c.ChannelID())

	secHeader := AsymmetricSecurityHeader{SecurityPolicyURI: string(c.policy.URI)}
	if c.ownCert != nil {
		secHeader.SenderCertificate = c.ownCert.DER
	}
	if len(c.peerCertRaw) > 0 {
		secHeader.ReceiverCertificateThumbprint = thumbprint(c.peerCertRaw)
	}
	secHeader.Encode(header)
	plainHeader := header.Bytes()

	seqEnc := ua.NewEncoder(8)
	(&SequenceHeader{SequenceNumber: c.nextSendSeq(), RequestID: requestID}).Encode(seqEnc)
	payload := append(seqEnc.Bytes(), body...)

	if c.policy.URI == security.PolicyNone || c.ownCert == nil {
		return append(plainHeader, payload...), nil
	}

	sigLen := c.ownCert.PrivateKey.Size()
	blockSize := 1
	if c.peerCert != nil {
		if pub, ok := c.peerCert.PublicKey.(*rsa.PublicKey); ok {
			blockSize = rsaBlockSize(pub)
		}
	}
	padded := pad(payload, blockSize, sigLen, usesExtraPadding(blockSize))
	sig, err := c.policy.RSASign(c.ownCert.PrivateKey, append(append([]byte{}, plainHeader...), padded...))
	if err != nil {
		return nil, err
	}
	toProtect := append(padded, sig...)

	if c.cfg.SecurityMode != ua.MessageSecurityModeSignAndEncrypt || c.peerCert == nil {
		return append(plainHeader, toProtect...), nil
	}
	pub, ok := c.peerCert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("uasc: peer certificate public key is not RSA")
	}
	encrypted, err := c.policy.RSAEncrypt(pub, toProtect)
	if err != nil {
		return nil, err
	}
	return append(plainHeader, encrypted...), nil
}

// openAsymmetricChunk reverses buildAsymmetricChunk: validates the
// sender certificate against the store, decrypts when the channel
// requires SignAndEncrypt, and verifies the RSA signature. It returns
// the decoded service body bytes.
func (c *SecureChannel) openAsymmetricChunk(raw []byte) ([]byte, error) {
	d := ua.NewDecoder(raw)
	var chHeader secureChannelHeader
	chHeader.Decode(d)
	var secHeader AsymmetricSecurityHeader
	secHeader.Decode(d)

	if len(secHeader.SenderCertificate) > 0 {
		cert, err := parseCertificate(secHeader.SenderCertificate)
		if err != nil {
			return nil, fmt.Errorf("uasc: parse sender certificate: %w", err)
		}
		if err := c.certs.ValidateRemoteCertificate(cert); err != nil {
			return nil, fmt.Errorf("uasc: %w", err)
		}
		c.peerCert = cert
		c.peerCertRaw = secHeader.SenderCertificate
	}

	plainHeaderLen := len(raw) - len(d.Remaining())
	plainHeader := raw[:plainHeaderLen]
	body := d.Remaining()

	if c.cfg.SecurityMode == ua.MessageSecurityModeSignAndEncrypt && c.ownCert != nil {
		dec, err := c.policy.RSADecrypt(c.ownCert.PrivateKey, body)
		if err != nil {
			return nil, fmt.Errorf("uasc: decrypt OPN body: %w", err)
		}
		body = dec
	}

	if c.policy.URI != security.PolicyNone && c.peerCert != nil {
		sigLen := len(body)
		if rsaPub, ok := c.peerCert.PublicKey.(*rsa.PublicKey); ok {
			sigLen = rsaBlockSize(rsaPub)
		}
		if sigLen > len(body) {
			return nil, fmt.Errorf("uasc: OPN body shorter than signature")
		}
		signed := body[:len(body)-sigLen]
		sig := body[len(body)-sigLen:]
		if err := c.policy.RSAVerify(c.peerCert, append(append([]byte{}, plainHeader...), signed...), sig); err != nil {
			return nil, fmt.Errorf("uasc: signature verification failed: %w", err)
		}
		// The sender padded against our public key's block size (the
		// key it encrypted under), mirroring blockSize's role in
		// buildAsymmetricChunk, so the extra-padding-byte decision
		// mirrors it too.
		ownBlockSize := 1
		if c.ownCert != nil {
			ownBlockSize = c.ownCert.PrivateKey.Size()
		}
		body = unpad(signed, usesExtraPadding(ownBlockSize))
	}

	sd := ua.NewDecoder(body)
	var seq SequenceHeader
	seq.Decode(sd)
	return sd.Remaining(), nil
}

func (c *SecureChannel) nextSendSeq() uint32 {
	c.sendSeqMu.Lock()
	defer c.sendSeqMu.Unlock()
	c.sendSeqNum++
	return c.sendSeqNum
}

func thumbprint(der []byte) []byte {
	if len(der) == 0 {
		return nil
	}
	ac := &pki.ApplicationCertificate{DER: der}
	return ac.Thumbprint()
}
