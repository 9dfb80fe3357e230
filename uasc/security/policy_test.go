package security

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPSHADeterministicAndLengthExact(t *testing.T) {
	p := Policies[PolicyBasic256Sha256]
	secret := []byte("client-nonce-secret-material")
	seed := []byte("server-nonce-seed-material")

	a := p.PSHA(secret, seed, 48)
	b := p.PSHA(secret, seed, 48)
	assert.Equal(t, a, b)
	assert.Len(t, a, 48)

	c := p.PSHA(secret, []byte("different seed"), 48)
	assert.NotEqual(t, a, c)
}

func TestDeriveKeysProducesDistinctMaterial(t *testing.T) {
	p := Policies[PolicyBasic256Sha256]
	keys := p.DeriveKeys([]byte("secret"), []byte("seed"))
	assert.Len(t, keys.SigningKey, p.SignatureKeyLength)
	assert.Len(t, keys.EncryptingKey, p.SymmetricKeyLength)
	assert.Len(t, keys.InitVector, p.SymmetricBlockSize)
	assert.NotEqual(t, keys.EncryptingKey, keys.InitVector)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	p := Policies[PolicyBasic256Sha256]
	key := []byte("0123456789abcdef0123456789abcdef")
	data := []byte("chunk plaintext header and body")

	sig := p.Sign(key, data)
	assert.True(t, p.Verify(key, data, sig))
	assert.False(t, p.Verify(key, append(data, 'x'), sig))
}

func TestCBCRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	iv := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	for i := range iv {
		iv[i] = byte(i * 3)
	}
	plaintext := []byte("0123456789abcdef0123456789abcdef") // 32 bytes, padded by the caller below
	padded := append(plaintext, make([]byte, 16-len(plaintext)%16)...)

	ct, err := EncryptCBC(key, iv, padded)
	require.NoError(t, err)
	pt, err := DecryptCBC(key, iv, ct)
	require.NoError(t, err)
	assert.Equal(t, padded, pt)
}

func TestRSAOAEPRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p := Policies[PolicyBasic256Sha256]
	plaintext := []byte("a nonce longer than one OAEP block to exercise chunking across the maximum message size, repeated to pad things out further and further until it must split")
	plaintext = append(plaintext, plaintext...)

	ct, err := p.RSAEncryptOAEP(&priv.PublicKey, plaintext)
	require.NoError(t, err)
	pt, err := p.RSADecryptOAEP(priv, ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestLookupRejectsUnknownPolicy(t *testing.T) {
	_, err := Lookup("http://example.com/bogus")
	assert.Error(t, err)
}
