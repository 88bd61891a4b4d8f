package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher, err := NewCipher("a perfectly sized thirty-two key")
	require.NoError(t, err)

	blob, err := cipher.Encrypt([]byte(`{"account_number":"12345678"}`))
	require.NoError(t, err)
	assert.NotContains(t, blob, "12345678")

	plaintext, err := cipher.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, `{"account_number":"12345678"}`, string(plaintext))
}

func TestNewCipherRequiresKey(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrKeyMissing)
}

func TestNewCipherKeyFormats(t *testing.T) {
	raw := sha256.Sum256([]byte("seed"))

	hexCipher, err := NewCipher(hex.EncodeToString(raw[:]))
	require.NoError(t, err)
	b64Cipher, err := NewCipher(base64.StdEncoding.EncodeToString(raw[:]))
	require.NoError(t, err)

	// Both encodings resolve to the same key material.
	blob, err := hexCipher.Encrypt([]byte("payload"))
	require.NoError(t, err)
	plaintext, err := b64Cipher.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestNewCipherDerivesShortKeys(t *testing.T) {
	cipher, err := NewCipher("short passphrase")
	require.NoError(t, err)

	blob, err := cipher.Encrypt([]byte("payload"))
	require.NoError(t, err)
	plaintext, err := cipher.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestDecryptWrongKeyFails(t *testing.T) {
	a, err := NewCipher("passphrase a")
	require.NoError(t, err)
	b, err := NewCipher("passphrase b")
	require.NoError(t, err)

	blob, err := a.Encrypt([]byte("payload"))
	require.NoError(t, err)

	_, err = b.Decrypt(blob)
	assert.ErrorIs(t, err, ErrInvalidBlob)
}

func TestDecryptMalformedBlob(t *testing.T) {
	cipher, err := NewCipher("passphrase")
	require.NoError(t, err)

	_, err = cipher.Decrypt("not base64 !!!")
	assert.ErrorIs(t, err, ErrInvalidBlob)

	_, err = cipher.Decrypt(base64.StdEncoding.EncodeToString([]byte("tiny")))
	assert.ErrorIs(t, err, ErrInvalidBlob)
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "****5678", MaskAccountNumber("12345678"))
	assert.Equal(t, "****5678", MaskAccountNumber("1234 5678"))
	assert.Equal(t, "123", MaskAccountNumber("123"))
	assert.Equal(t, "", MaskAccountNumber(""))
}
