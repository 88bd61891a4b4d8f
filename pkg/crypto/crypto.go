// Package crypto provides field-level AES-256-GCM encryption for sensitive
// blobs such as bank details. Blobs are stored as base64(iv|ciphertext|tag).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
)

const nonceSize = 12

var (
	ErrKeyMissing       = errors.New("encryption key is required")
	ErrInvalidBlob      = errors.New("encrypted blob is malformed")
	hexKeyPattern       = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)
	base64KeyPattern    = regexp.MustCompile(`^[A-Za-z0-9+/=]{43,44}$`)
)

// Cipher encrypts and decrypts opaque blobs with a fixed key.
type Cipher struct {
	key []byte
}

// NewCipher accepts a 32-byte key as hex, base64 or raw utf8; anything else
// is derived to 32 bytes with SHA-256.
func NewCipher(rawKey string) (*Cipher, error) {
	if rawKey == "" {
		return nil, ErrKeyMissing
	}

	var key []byte
	switch {
	case hexKeyPattern.MatchString(rawKey):
		key, _ = hex.DecodeString(rawKey)
	case base64KeyPattern.MatchString(rawKey):
		decoded, err := base64.StdEncoding.DecodeString(rawKey)
		if err == nil && len(decoded) == 32 {
			key = decoded
		}
	}
	if key == nil {
		if buf := []byte(rawKey); len(buf) == 32 {
			key = buf
		} else {
			sum := sha256.Sum256(buf)
			key = sum[:]
		}
	}

	return &Cipher{key: key}, nil
}

// Encrypt seals plaintext and returns base64(iv|ciphertext|tag).
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt.
func (c *Cipher) Decrypt(payload string) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidBlob
	}
	if len(buf) < nonceSize+16 {
		return nil, ErrInvalidBlob
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, buf[:nonceSize], buf[nonceSize:], nil)
	if err != nil {
		return nil, ErrInvalidBlob
	}
	return plaintext, nil
}

// MaskAccountNumber keeps the last four characters visible.
func MaskAccountNumber(value string) string {
	s := strings.Join(strings.Fields(value), "")
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
