package uasc

import (
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uacp"
	"github.com/rob-gra/go-opcua/uasc/security"
)

// chunkOverhead bounds how much of the negotiated SendBufferSize is
// reserved for the channel/security/sequence headers and trailing
// signature/padding, so a single splitBody call never has to measure
// the actual header it is about to write.
const chunkOverhead = 64

// SendRequest encodes req as a service body and writes it across one
// or more MSG chunks under requestID, for use by a dispatcher built
// atop an already-open channel.
func (c *SecureChannel) SendRequest(requestID uint32, req ua.Encodable) error {
	body := ua.NewEncoder(256)
	if err := EncodeServiceBody(body, req); err != nil {
		return err
	}
	return c.sendMSGChunks(uacp.MessageTypeMessage, requestID, body.Bytes())
}

// sendMSGChunks splits body across one or more MSG/CLO chunks bounded
// by the negotiated SendBufferSize, signs (and, under
// SignAndEncrypt, encrypts) each chunk under the current token, and
// writes them in order sharing one requestID. Every chunk but the
// last is Continuation; the last is Final. Two tokens (current and
// previous) may be valid simultaneously during rotation.
func (c *SecureChannel) sendMSGChunks(typ uacp.MessageType, requestID uint32, body []byte) error {
	limit := int(c.Conn.Limits.SendBufferSize)
	if limit <= 0 {
		limit = 65536
	}
	max := limit - chunkOverhead
	if max <= 0 {
		max = len(body)
		if max == 0 {
			max = 1
		}
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()

	for offset := 0; ; {
		end := offset + max
		final := true
		if end >= len(body) {
			end = len(body)
		} else {
			final = false
		}
		chunkType := uacp.ChunkContinuation
		if final {
			chunkType = uacp.ChunkFinal
		}
		chunk, err := c.buildSymmetricChunk(requestID, body[offset:end])
		if err != nil {
			return err
		}
		if err := c.Conn.WriteChunk(typ, chunkType, chunk); err != nil {
			return err
		}
		offset = end
		if final {
			return nil
		}
	}
}

// buildSymmetricChunk assembles one MSG/CLO chunk under the current
// token: ChannelId + TokenId + SequenceHeader + payload, HMAC-signed
// and, under SignAndEncrypt, AES-CBC-encrypted.
func (c *SecureChannel) buildSymmetricChunk(requestID uint32, payload []byte) ([]byte, error) {
	c.mu.Lock()
	token := c.current
	channelID := c.channelID
	policyNone := c.policy.URI == security.PolicyNone
	c.mu.Unlock()
	if token == nil {
		return nil, fmt.Errorf("uasc: no active security token, channel not open")
	}

	header := ua.NewEncoder(len(payload) + 32)
	header.WriteUint32(channelID)
	(&SymmetricSecurityHeader{TokenID: token.TokenID}).Encode(header)
	plainHeader := header.Bytes()

	seqEnc := ua.NewEncoder(8)
	(&SequenceHeader{SequenceNumber: c.nextSendSeq(), RequestID: requestID}).Encode(seqEnc)
	body := append(seqEnc.Bytes(), payload...)

	if policyNone {
		return append(plainHeader, body...), nil
	}

	blockSize := c.policy.SymmetricBlockSize
	sigLen := c.policy.SignatureLength
	// AES block size is always 16; padding counts never exceed 255, so
	// the single-byte PaddingSize encoding always suffices here.
	padded := pad(body, blockSize, sigLen, false)
	sig := c.policy.Sign(token.sendKeys.SigningKey, append(append([]byte{}, plainHeader...), padded...))
	toProtect := append(padded, sig...)

	if c.cfg.SecurityMode != ua.MessageSecurityModeSignAndEncrypt {
		return append(plainHeader, toProtect...), nil
	}
	enc, err := security.EncryptCBC(token.sendKeys.EncryptingKey, token.sendKeys.InitVector, toProtect)
	if err != nil {
		return nil, err
	}
	return append(plainHeader, enc...), nil
}

// openSymmetricChunk reverses buildSymmetricChunk against whichever of
// the current/previous tokens matches the chunk's TokenId, since both
// remain valid for verification during a renewal window.
func (c *SecureChannel) openSymmetricChunk(raw []byte) (requestID uint32, seq uint32, body []byte, err error) {
	d := ua.NewDecoder(raw)
	var chHeader secureChannelHeader
	chHeader.Decode(d)
	var secHeader SymmetricSecurityHeader
	secHeader.Decode(d)
	plainHeaderLen := len(raw) - len(d.Remaining())
	plainHeader := raw[:plainHeaderLen]
	cipherBody := d.Remaining()

	c.mu.Lock()
	token := c.tokenByID(secHeader.TokenID)
	if token != nil && token == c.current {
		c.previous = nil // the server has moved to the new token
	}
	policyNone := c.policy.URI == security.PolicyNone
	mode := c.cfg.SecurityMode
	c.mu.Unlock()
	if token == nil {
		return 0, 0, nil, fmt.Errorf("uasc: unknown security token id %d", secHeader.TokenID)
	}

	plain := cipherBody
	if !policyNone && mode == ua.MessageSecurityModeSignAndEncrypt {
		plain, err = security.DecryptCBC(token.recvKeys.EncryptingKey, token.recvKeys.InitVector, cipherBody)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("uasc: decrypt MSG chunk: %w", err)
		}
	}

	if !policyNone {
		sigLen := c.policy.SignatureLength
		if sigLen > len(plain) {
			return 0, 0, nil, fmt.Errorf("uasc: MSG chunk shorter than signature")
		}
		signed := plain[:len(plain)-sigLen]
		sig := plain[len(plain)-sigLen:]
		if !c.policy.Verify(token.recvKeys.SigningKey, append(append([]byte{}, plainHeader...), signed...), sig) {
			return 0, 0, nil, fmt.Errorf("uasc: MSG signature verification failed")
		}
		plain = unpad(signed, false)
	}

	sd := ua.NewDecoder(plain)
	var sh SequenceHeader
	sh.Decode(sd)
	return sh.RequestID, sh.SequenceNumber, sd.Remaining(), nil
}

// tokenByID returns current or previous, whichever carries id. Caller
// holds c.mu.
func (c *SecureChannel) tokenByID(id uint32) *securityToken {
	if c.current != nil && c.current.TokenID == id {
		return c.current
	}
	if c.previous != nil && c.previous.TokenID == id {
		return c.previous
	}
	return nil
}

// checkSequence enforces strictly increasing sequence numbers per
// requestID's channel, allowing the documented wraparound at
// sequenceRolloverThreshold.
func (c *SecureChannel) checkSequence(seq uint32) error {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	if !c.haveRecvSeq {
		c.recvSeqNum = seq
		c.haveRecvSeq = true
		return nil
	}
	expected := c.recvSeqNum + 1
	if expected == 0 || (c.recvSeqNum >= sequenceRolloverThreshold && seq < sequenceRolloverThreshold) {
		// wraparound is allowed once past the threshold
	} else if seq != expected {
		return fmt.Errorf("uasc: sequence number %d out of order, expected %d", seq, expected)
	}
	c.recvSeqNum = seq
	return nil
}

// ReadMessage reads and reassembles the next complete MSG body,
// blocking on the underlying Conn. OPN responses, read by Open/Renew,
// use their own single-chunk path instead; ReadMessage
// is the steady-state read used by a dispatcher once the channel is
// open.
func (c *SecureChannel) ReadMessage() (requestID uint32, body []byte, err error) {
	for {
		f, err := c.Conn.ReadChunk()
		if err != nil {
			return 0, nil, err
		}
		switch f.Type {
		case uacp.MessageTypeMessage, uacp.MessageTypeClose:
			reqID, seq, chunkBody, err := c.openSymmetricChunk(f.Body)
			if err != nil {
				return 0, nil, err
			}
			if f.Chunk == uacp.ChunkAbort {
				c.dropReassembly(reqID)
				continue
			}
			if err := c.checkSequence(seq); err != nil {
				return 0, nil, err
			}
			complete, done := c.appendReassembly(reqID, chunkBody, f.Chunk == uacp.ChunkFinal)
			if done {
				return reqID, complete, nil
			}
		case uacp.MessageTypeError:
			d := ua.NewDecoder(f.Body)
			var em uacp.ErrorMessage
			em.Decode(d)
			return 0, nil, &ua.StatusError{Code: em.Error, Op: "uasc: server sent ERR: " + em.Reason}
		default:
			return 0, nil, fmt.Errorf("uasc: unexpected message type %q on open channel", f.Type)
		}
	}
}

func (c *SecureChannel) appendReassembly(requestID uint32, part []byte, final bool) ([]byte, bool) {
	c.reassemblyMu.Lock()
	defer c.reassemblyMu.Unlock()
	c.reassembly[requestID] = append(c.reassembly[requestID], part...)
	if !final {
		return nil, false
	}
	full := c.reassembly[requestID]
	delete(c.reassembly, requestID)
	return full, true
}

func (c *SecureChannel) dropReassembly(requestID uint32) {
	c.reassemblyMu.Lock()
	defer c.reassemblyMu.Unlock()
	delete(c.reassembly, requestID)
}
