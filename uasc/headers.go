package uasc

import "github.com/rob-gra/go-opcua/ua"

// SequenceHeader prefixes every chunk's body (after the security
// header): a monotonically increasing sequence number and the request
// id it answers or initiates.
type SequenceHeader struct {
	SequenceNumber uint32
	RequestID      uint32
}

func (h *SequenceHeader) Encode(e *ua.Encoder) {
	e.WriteUint32(h.SequenceNumber)
	e.WriteUint32(h.RequestID)
}

func (h *SequenceHeader) Decode(d *ua.Decoder) {
	h.SequenceNumber = d.ReadUint32()
	h.RequestID = d.ReadUint32()
}

// AsymmetricSecurityHeader carries the certificate material for the
// OPN handshake: the policy URI plus, when the policy is not None, the
// sender's own certificate and the thumbprint of the certificate the
// message is encrypted/signed for.
type AsymmetricSecurityHeader struct {
	SecurityPolicyURI         string
	SenderCertificate         []byte
	ReceiverCertificateThumbprint []byte
}

func (h *AsymmetricSecurityHeader) Encode(e *ua.Encoder) {
	e.WriteString(ua.NewString(h.SecurityPolicyURI))
	e.WriteByteString(h.SenderCertificate)
	e.WriteByteString(h.ReceiverCertificateThumbprint)
}

func (h *AsymmetricSecurityHeader) Decode(d *ua.Decoder) {
	h.SecurityPolicyURI = d.ReadString().String()
	h.SenderCertificate = d.ReadByteString()
	h.ReceiverCertificateThumbprint = d.ReadByteString()
}

// SymmetricSecurityHeader is the 4-byte token id that replaces
// AsymmetricSecurityHeader on MSG and CLO chunks once a channel is
// open: it names which of the channel's (current or previous)
// ChannelSecurityToken derived the keys protecting this chunk.
type SymmetricSecurityHeader struct {
	TokenID uint32
}

func (h *SymmetricSecurityHeader) Encode(e *ua.Encoder) { e.WriteUint32(h.TokenID) }
func (h *SymmetricSecurityHeader) Decode(d *ua.Decoder) { h.TokenID = d.ReadUint32() }

// secureChannelHeader is the leading ChannelId common to every
// OPN/MSG/CLO chunk's security header, read before the caller knows
// whether to decode an Asymmetric or Symmetric header.
type secureChannelHeader struct {
	ChannelID uint32
}

func (h *secureChannelHeader) Encode(e *ua.Encoder) { e.WriteUint32(h.ChannelID) }
func (h *secureChannelHeader) Decode(d *ua.Decoder) { h.ChannelID = d.ReadUint32() }
