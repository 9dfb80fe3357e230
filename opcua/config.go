// Package opcua implements the client-facing half of an OPC UA
// connection: dialing a server, opening and maintaining a secure
// channel and session, and issuing the Attribute/View/Method/
// Subscription services on top of it.
package opcua

import (
	"errors"
	"time"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uasc"
	"github.com/rob-gra/go-opcua/uasc/pki"
	"github.com/rob-gra/go-opcua/uasc/security"
)

// Session timeout bounds this client will request. Values outside
// these ranges are rejected by Valid, mirroring uasc.Config's
// RequestedLifetime bounds.
const (
	SessionTimeoutMin = 10 * time.Second
	SessionTimeoutMax = 24 * time.Hour

	// DefaultPublishWindow is how many PublishRequests the publish
	// loop keeps outstanding at once, bounding how long the server can
	// hold notifications before a free request slot is available to
	// carry them. The default, 2, balances notification latency against
	// the number of requests the server must be willing to hold open.
	DefaultPublishWindow = 2
)

// Config configures one Client: the endpoint to dial, the identity to
// activate the session under, and the secure channel parameters
// layered straight from uasc.Config. Valid fills the fields that
// document a default; SecurityPolicyURI and SecurityMode have none, so
// a zero Config is rejected unless they are set (DefaultConfig sets
// them). It follows the same Config/Valid/DefaultConfig shape as
// uasc.Config.
type Config struct {
	// ApplicationName/ApplicationURI/ProductURI describe this client
	// in CreateSessionRequest.ClientDescription and, if Certificates
	// is a *pki.DirectoryStore, the generated self-signed certificate.
	ApplicationName string
	ApplicationURI  string
	ProductURI      string

	// SecurityPolicyURI/SecurityMode select the secure channel's
	// SecurityPolicy; None/None accepts anonymous discovery, matching
	// uasc.DefaultConfig.
	SecurityPolicyURI security.PolicyURI
	SecurityMode      ua.MessageSecurityMode

	// Identity authenticates ActivateSession; AnonymousIdentity{} if nil.
	Identity Identity

	// Certificates supplies the application instance certificate and
	// validates the server's. Required whenever SecurityPolicyURI is
	// not PolicyNone.
	Certificates pki.CertificateStore

	// SessionTimeout is the requested session timeout; 60s if zero.
	SessionTimeout time.Duration

	// RequestTimeout bounds how long a single service call waits for
	// its response before the dispatcher gives up on it.
	RequestTimeout time.Duration

	// PublishWindow is how many PublishRequests the client keeps
	// outstanding; DefaultPublishWindow if zero.
	PublishWindow int

	// ChannelConfig configures the underlying secure channel
	// (RequestedLifetime, buffer sizes, RenewAfterFraction). Its
	// SecurityPolicyURI/SecurityMode are overwritten from the fields
	// above.
	ChannelConfig uasc.Config
}

// Valid fills unset fields with their documented default and rejects
// out-of-range explicit values.
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("opcua: invalid pointer")
	}
	if c.ApplicationName == "" {
		c.ApplicationName = "go-opcua client"
	}
	if c.ApplicationURI == "" {
		c.ApplicationURI = "urn:go-opcua:client"
	}
	if c.ProductURI == "" {
		c.ProductURI = "urn:go-opcua:client:product"
	}
	if c.Identity == nil {
		c.Identity = AnonymousIdentity{}
	}
	if c.SessionTimeout == 0 {
		c.SessionTimeout = 60 * time.Second
	} else if c.SessionTimeout < SessionTimeoutMin || c.SessionTimeout > SessionTimeoutMax {
		return errors.New("opcua: SessionTimeout out of [10s, 24h]")
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.PublishWindow == 0 {
		c.PublishWindow = DefaultPublishWindow
	}
	if c.SecurityPolicyURI != security.PolicyNone && c.Certificates == nil {
		return errors.New("opcua: Certificates is required when SecurityPolicyURI is not PolicyNone")
	}
	c.ChannelConfig.SecurityPolicyURI = c.SecurityPolicyURI
	c.ChannelConfig.SecurityMode = c.SecurityMode
	return c.ChannelConfig.Valid()
}

// DefaultConfig returns a Config with security and identity disabled,
// suitable for anonymous discovery and reads against an unsecured
// endpoint.
func DefaultConfig() Config {
	c := Config{SecurityPolicyURI: security.PolicyNone, SecurityMode: ua.MessageSecurityModeNone}
	_ = c.Valid()
	return c
}
