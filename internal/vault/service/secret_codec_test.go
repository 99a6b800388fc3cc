package service

import (
	"crypto/aes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestSecretCodec_RoundTrip(t *testing.T) {
	codec := NewSecretCodec()

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple value", plaintext: "S3cret-db-password!"},
		{name: "empty value", plaintext: ""},
		{name: "exact block size", plaintext: strings.Repeat("a", 16)},
		{name: "multiple blocks", plaintext: strings.Repeat("b", 48)},
		{name: "one byte", plaintext: "x"},
		{name: "unicode value", plaintext: "pässwörd-日本語-🔑"},
		{name: "embedded null", plaintext: "before\x00after"},
		{name: "long value", plaintext: strings.Repeat("credential-material-", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, key, err := codec.Seal(tt.plaintext)
			require.NoError(t, err)
			assert.NotEmpty(t, key)

			plaintext, err := codec.Open(ciphertext, key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestSecretCodec_FreshKeyAndIVPerSeal(t *testing.T) {
	codec := NewSecretCodec()

	firstCiphertext, firstKey, err := codec.Seal("same plaintext")
	require.NoError(t, err)

	secondCiphertext, secondKey, err := codec.Seal("same plaintext")
	require.NoError(t, err)

	// Each seal must use a fresh key and IV, so both outputs differ
	assert.NotEqual(t, firstKey, secondKey)
	assert.NotEqual(t, firstCiphertext, secondCiphertext)
}

func TestSecretCodec_KeyIsNotReusable(t *testing.T) {
	codec := NewSecretCodec()

	ciphertext, _, err := codec.Seal("the real value")
	require.NoError(t, err)

	_, otherKey, err := codec.Seal("another value")
	require.NoError(t, err)

	// Opening with a different valid key yields garbage, not the original
	plaintext, err := codec.Open(ciphertext, otherKey)
	require.NoError(t, err)
	assert.NotEqual(t, "the real value", plaintext)
}

func TestSecretCodec_WireFormat(t *testing.T) {
	codec := NewSecretCodec()

	ciphertext, key, err := codec.Seal("format check")
	require.NoError(t, err)

	rawKey, err := base64.URLEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, rawKey, 32)

	payload, err := base64.URLEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	// IV prefix plus at least one block, block aligned
	assert.GreaterOrEqual(t, len(payload), 2*aes.BlockSize)
	assert.Zero(t, len(payload)%aes.BlockSize)
}

func TestSecretCodec_AlignedPlaintextGainsPaddingBlock(t *testing.T) {
	codec := NewSecretCodec()
	aligned := strings.Repeat("a", aes.BlockSize)

	ciphertext, key, err := codec.Seal(aligned)
	require.NoError(t, err)

	payload, err := base64.URLEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	// IV, the plaintext block, and a full block of NUL padding
	assert.Len(t, payload, 3*aes.BlockSize)

	plaintext, err := codec.Open(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, aligned, plaintext)
}

func TestSecretCodec_OpenFailures(t *testing.T) {
	codec := NewSecretCodec()

	validCiphertext, validKey, err := codec.Seal("value")
	require.NoError(t, err)

	shortPayload := base64.URLEncoding.EncodeToString([]byte("short"))
	unaligned := base64.URLEncoding.EncodeToString(make([]byte, aes.BlockSize+7))
	shortKey := base64.URLEncoding.EncodeToString(make([]byte, 16))

	tests := []struct {
		name       string
		ciphertext string
		key        string
	}{
		{name: "ciphertext not base64", ciphertext: "not-valid-base64!!!", key: validKey},
		{name: "key not base64", ciphertext: validCiphertext, key: "not-valid-base64!!!"},
		{name: "key wrong length", ciphertext: validCiphertext, key: shortKey},
		{name: "ciphertext shorter than iv", ciphertext: shortPayload, key: validKey},
		{name: "ciphertext not block aligned", ciphertext: unaligned, key: validKey},
		{name: "empty ciphertext", ciphertext: "", key: validKey},
		{name: "empty key", ciphertext: validCiphertext, key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Open(tt.ciphertext, tt.key)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrDecryptionFailure))
		})
	}
}

func TestSecretCodec_TrailingNullIsStripped(t *testing.T) {
	codec := NewSecretCodec()

	// A plaintext ending in NUL bytes cannot be distinguished from padding.
	ciphertext, key, err := codec.Seal("ends-in-null\x00")
	require.NoError(t, err)

	plaintext, err := codec.Open(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, "ends-in-null", plaintext)
}
