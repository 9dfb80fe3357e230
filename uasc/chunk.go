package uasc

import (
	"crypto/rsa"
	"crypto/x509"
)

// parseCertificate parses a DER-encoded X.509 certificate as carried
// in an AsymmetricSecurityHeader.
func parseCertificate(der []byte) (*x509.Certificate, error) {
	return x509.ParseCertificate(der)
}

// rsaBlockSize returns the RSA modulus size in bytes for pub, used as
// the block size asymmetric padding aligns to.
func rsaBlockSize(pub *rsa.PublicKey) int {
	if pub == nil {
		return 1
	}
	return pub.Size()
}

// extraPaddingThreshold is the RSA key size, in bytes, above which the
// wire format adds a trailing ExtraPaddingSize byte (per spec.md §6:
// "an extra extra_padding_size byte when the key is larger than 2048
// bits"): 2048 bits = 256 bytes.
const extraPaddingThreshold = 256

// usesExtraPadding reports whether an asymmetric key of keySize bytes
// requires the two-byte PaddingSize/ExtraPaddingSize encoding.
func usesExtraPadding(keySize int) bool {
	return keySize > extraPaddingThreshold
}

// pad computes the OPC UA PKCS-like padding scheme: a PaddingSize byte
// (the low byte of the padding count n) plus n further bytes, all
// carrying that same low byte, are appended so that
// len(payload)+1+n+extra(+1 if extraPaddingByte) is a multiple of
// blockSize. extra accounts for a trailing signature that will be
// appended (and, for symmetric chunks, encrypted) after the padding.
// extraPaddingByte appends a final ExtraPaddingSize byte carrying n's
// high byte, required whenever the asymmetric key doing the
// encryption is larger than 2048 bits, since a single byte cannot then
// name every possible padding count.
func pad(payload []byte, blockSize, extra int, extraPaddingByte bool) []byte {
	if blockSize <= 1 {
		return payload
	}
	headerLen := 1
	if extraPaddingByte {
		headerLen = 2
	}
	total := len(payload) + headerLen + extra
	n := (blockSize - (total % blockSize)) % blockSize
	out := make([]byte, len(payload)+1+n+headerLen-1)
	copy(out, payload)
	lo := byte(n)
	for i := len(payload); i < len(payload)+1+n; i++ {
		out[i] = lo
	}
	if extraPaddingByte {
		out[len(out)-1] = byte(n >> 8)
	}
	return out
}

// unpad strips padding added by pad, given the trailing signature
// already removed by the caller. extraPaddingByte must match the value
// passed to pad when the padding was produced.
func unpad(payload []byte, extraPaddingByte bool) []byte {
	end := len(payload)
	hi := 0
	if extraPaddingByte {
		if end == 0 {
			return payload
		}
		hi = int(payload[end-1])
		end--
	}
	if end == 0 {
		return payload
	}
	lo := int(payload[end-1])
	n := hi<<8 | lo
	total := 1 + n
	if n < 0 || total > end {
		return payload
	}
	return payload[:end-total]
}
