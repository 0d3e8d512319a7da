package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSecret_KnownVectors(t *testing.T) {
	// Vectors produced by the legacy tool; the alphabet must stay
	// bit-compatible so existing config files keep working.
	tests := []struct {
		plain   string
		encoded string
	}{
		{plain: "A", encoded: "B0"},
		{plain: "AB", encoded: "B0B7"},
		{plain: "", encoded: ""},
	}

	for _, tt := range tests {
		t.Run(tt.plain, func(t *testing.T) {
			assert.Equal(t, tt.encoded, EncodeSecret(tt.plain))
		})
	}
}

func TestSecretRoundTrip(t *testing.T) {
	secrets := []string{
		"s3cret-api-key",
		"password with spaces",
		"unicode: žluťoučký",
		"",
	}

	for _, secret := range secrets {
		decoded, err := DecodeSecret(EncodeSecret(secret))
		require.NoError(t, err)
		assert.Equal(t, secret, decoded)
	}
}

func TestDecodeSecret_InvalidInput(t *testing.T) {
	_, err := DecodeSecret("zz")
	assert.Error(t, err, "characters outside the alphabet are rejected")

	_, err = DecodeSecret("9")
	assert.Error(t, err, "odd-length base16 is rejected")
}
