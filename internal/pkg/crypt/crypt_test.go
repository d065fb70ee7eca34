package crypt

import (
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicAnd32Bytes(t *testing.T) {
	k1 := DeriveKey("passphrase", "salt")
	k2 := DeriveKey("passphrase", "salt")
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)

	k3 := DeriveKey("passphrase", "other-salt")
	assert.NotEqual(t, k1, k3)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := DeriveKey("passphrase", "salt")
	for _, plain := range []string{"+353871234567", "x", "a longer value spanning multiple aes blocks for good measure"} {
		enc, err := Encrypt(plain, key)
		require.NoError(t, err)

		dec, err := Decrypt(enc, key)
		require.NoError(t, err)
		assert.Equal(t, plain, dec)
	}
}

func TestEncrypt_RandomIVPrefix(t *testing.T) {
	key := DeriveKey("passphrase", "salt")
	a, err := Encrypt("+353871234567", key)
	require.NoError(t, err)
	b, err := Encrypt("+353871234567", key)
	require.NoError(t, err)

	// fresh IV per call, so the same plaintext never encrypts identically
	assert.NotEqual(t, a, b)
	assert.Len(t, a[:2*aes.BlockSize], 32) // hex-encoded 16-byte IV
}

func TestDecrypt_WrongKey(t *testing.T) {
	key := DeriveKey("passphrase", "salt")
	wrong := DeriveKey("different", "salt")

	enc, err := Encrypt("+353871234567", key)
	require.NoError(t, err)

	dec, err := Decrypt(enc, wrong)
	if err == nil {
		assert.NotEqual(t, "+353871234567", dec)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	key := DeriveKey("passphrase", "salt")

	_, err := Decrypt("not-hex", key)
	assert.Error(t, err)

	_, err = Decrypt("abcd", key)
	assert.Error(t, err)
}
