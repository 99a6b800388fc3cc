// Package service provides the cryptographic sealing of item values.
package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/credvault/internal/errors"
)

const keySize = 32 // AES-256

// SecretCodec seals and opens item values. Each Seal generates a fresh random
// key, so every item carries its own key next to its ciphertext.
//
// Wire format: Value = urlsafe base64(IV || AES-256-CBC ciphertext),
// Key = urlsafe base64(32-byte key). Plaintext is padded to the next AES
// block boundary with NUL bytes (a full block when already aligned), which
// Open strips; a plaintext ending in NUL therefore does not round-trip and
// is rejected at the validation layer.
//
// The codec is stateless and safe for concurrent use.
type SecretCodec struct{}

// NewSecretCodec creates a new SecretCodec.
func NewSecretCodec() *SecretCodec {
	return &SecretCodec{}
}

// Seal encrypts plaintext with a freshly generated key. It returns the
// base64 ciphertext and the base64 key for persistence.
func (c *SecretCodec) Seal(plaintext string) (ciphertext, key string, err error) {
	rawKey := make([]byte, keySize)
	if _, err := rand.Read(rawKey); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate encryption key")
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to create cipher")
	}

	padded := padNull([]byte(plaintext), aes.BlockSize)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate iv")
	}

	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)

	payload := make([]byte, 0, len(iv)+len(encrypted))
	payload = append(payload, iv...)
	payload = append(payload, encrypted...)

	return base64.URLEncoding.EncodeToString(payload),
		base64.URLEncoding.EncodeToString(rawKey),
		nil
}

// Open decrypts a sealed value with its key, returning the original plaintext.
// Any malformed input surfaces as ErrDecryptionFailure: the caller cannot tell
// a corrupt ciphertext from a wrong key.
func (c *SecretCodec) Open(ciphertext, key string) (string, error) {
	rawKey, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrDecryptionFailure, "malformed key encoding")
	}
	if len(rawKey) != keySize {
		return "", apperrors.Wrap(apperrors.ErrDecryptionFailure, "invalid key length")
	}

	payload, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrDecryptionFailure, "malformed ciphertext encoding")
	}
	if len(payload) < aes.BlockSize || (len(payload)-aes.BlockSize)%aes.BlockSize != 0 {
		return "", apperrors.Wrap(apperrors.ErrDecryptionFailure, "invalid ciphertext length")
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrDecryptionFailure, "failed to create cipher")
	}

	iv := payload[:aes.BlockSize]
	encrypted := payload[aes.BlockSize:]

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(decrypted, encrypted)

	return string(bytes.TrimRight(decrypted, "\x00")), nil
}

// padNull pads data with NUL bytes up to the next multiple of blockSize.
// Data already on a block boundary gains a full padding block, so every
// sealed value carries at least one padding byte.
func padNull(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	return padded
}
