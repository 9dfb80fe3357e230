package uasc

import (
	"errors"
	"time"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uasc/security"
)

// Default port for opc.tcp, the IANA-registered scheme this transport
// implements.
const DefaultPort = 4840

// Channel lifetime/chunk-size bounds this client will negotiate
// within. Values outside these ranges are rejected by Valid rather
// than silently clamped.
const (
	RequestedLifetimeMin = 10 * time.Second
	RequestedLifetimeMax = 24 * time.Hour

	SendBufferSizeMin = 8192
	SendBufferSizeMax = 1 << 24
)

// Config configures one SecureChannel's handshake and token-renewal
// behavior. The zero value is completed by Valid with the documented
// defaults, exposed through a Config/Valid/DefaultConfig trio so
// callers can either build a Config by hand or start from
// DefaultConfig and override individual fields.
type Config struct {
	// SecurityPolicyURI selects the SecurityPolicy; security.PolicyNone
	// if empty.
	SecurityPolicyURI security.PolicyURI
	// SecurityMode selects None/Sign/SignAndEncrypt.
	SecurityMode ua.MessageSecurityMode

	// RequestedLifetime is how long a security token is asked to live
	// before the channel renews it with a fresh OpenSecureChannel.
	RequestedLifetime time.Duration

	// SendBufferSize/ReceiveBufferSize are the local Hello buffer
	// limits; actual chunk size is the negotiated minimum with the
	// server's Acknowledge.
	SendBufferSize    uint32
	ReceiveBufferSize uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32

	// RenewAfterFraction triggers a proactive token renewal once this
	// fraction of RevisedLifetime has elapsed, rather than waiting for
	// expiry and losing in-flight chunks.
	RenewAfterFraction float64
}

// Valid fills unset fields with their documented default and rejects
// out-of-range explicit values.
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("uasc: invalid pointer")
	}
	if c.SecurityPolicyURI == "" {
		c.SecurityPolicyURI = security.PolicyNone
	}
	if c.RequestedLifetime == 0 {
		c.RequestedLifetime = 60 * time.Minute
	} else if c.RequestedLifetime < RequestedLifetimeMin || c.RequestedLifetime > RequestedLifetimeMax {
		return errors.New("uasc: RequestedLifetime out of [10s, 24h]")
	}

	if c.SendBufferSize == 0 {
		c.SendBufferSize = 65536
	} else if c.SendBufferSize < SendBufferSizeMin || c.SendBufferSize > SendBufferSizeMax {
		return errors.New("uasc: SendBufferSize out of range")
	}
	if c.ReceiveBufferSize == 0 {
		c.ReceiveBufferSize = 65536
	} else if c.ReceiveBufferSize < SendBufferSizeMin || c.ReceiveBufferSize > SendBufferSizeMax {
		return errors.New("uasc: ReceiveBufferSize out of range")
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 1 << 22
	}
	if c.MaxChunkCount == 0 {
		c.MaxChunkCount = 512
	}
	if c.RenewAfterFraction == 0 {
		c.RenewAfterFraction = 0.75
	} else if c.RenewAfterFraction <= 0 || c.RenewAfterFraction >= 1 {
		return errors.New("uasc: RenewAfterFraction must be in (0, 1)")
	}
	return nil
}

// DefaultConfig returns a Config with security disabled (PolicyNone,
// MessageSecurityModeNone), suitable for anonymous discovery and
// reads against an unsecured endpoint.
func DefaultConfig() Config {
	c := Config{SecurityPolicyURI: security.PolicyNone, SecurityMode: ua.MessageSecurityModeNone}
	_ = c.Valid()
	return c
}
