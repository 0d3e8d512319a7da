package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Secrets are stored base16-encoded through a fixed shuffled alphabet.
// This is obfuscation, not encryption; the alphabet is the one the legacy
// tool derived from its seeded shuffle, kept so existing config files stay
// readable.
const (
	hexAlphabet      = "0123456789ABCDEF"
	shuffledAlphabet = "9071BE283A4CD5F6"
)

// EncodeSecret obfuscates a secret for on-disk storage.
func EncodeSecret(plain string) string {
	encoded := strings.ToUpper(hex.EncodeToString([]byte(plain)))

	var b strings.Builder
	b.Grow(len(encoded))
	for i := 0; i < len(encoded); i++ {
		b.WriteByte(shuffledAlphabet[strings.IndexByte(hexAlphabet, encoded[i])])
	}
	return b.String()
}

// DecodeSecret reverses EncodeSecret.
func DecodeSecret(obfuscated string) (string, error) {
	var b strings.Builder
	b.Grow(len(obfuscated))
	for i := 0; i < len(obfuscated); i++ {
		idx := strings.IndexByte(shuffledAlphabet, obfuscated[i])
		if idx < 0 {
			return "", fmt.Errorf("invalid secret encoding at position %d", i)
		}
		b.WriteByte(hexAlphabet[idx])
	}

	plain, err := hex.DecodeString(b.String())
	if err != nil {
		return "", fmt.Errorf("invalid secret encoding: %w", err)
	}
	return string(plain), nil
}
