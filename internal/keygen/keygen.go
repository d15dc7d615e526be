// Package keygen produces random string keys for OAuth state and PKCE values.
package keygen

import (
	"crypto/rand"
	"encoding/base64"
)

const (
	// DefaultKeyLength is 32 bytes = 256 bits
	DefaultKeyLength = 32
	// CodeVerifierKeyLength encodes to 128 characters, the RFC 7636 maximum
	CodeVerifierKeyLength = 96
)

// StringKeyGenerator generates unique string keys
type StringKeyGenerator interface {
	GenerateKey() string
}

// Base64StringKeyGenerator returns keyLength random bytes encoded with an
// unpadded, URL safe base64 alphabet. It holds no mutable state and is safe
// for concurrent use.
type Base64StringKeyGenerator struct {
	keyLength int
}

var _ StringKeyGenerator = (*Base64StringKeyGenerator)(nil)

// NewBase64StringKeyGenerator creates a generator of keyLength random bytes.
// Lengths below DefaultKeyLength are raised to DefaultKeyLength.
func NewBase64StringKeyGenerator(keyLength int) *Base64StringKeyGenerator {
	if keyLength < DefaultKeyLength {
		keyLength = DefaultKeyLength
	}
	return &Base64StringKeyGenerator{keyLength: keyLength}
}

func (g *Base64StringKeyGenerator) GenerateKey() string {
	b := make([]byte, g.keyLength)
	// crypto/rand.Read never returns an error, it crashes the program instead
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// KeyLength returns the number of random bytes in each key before encoding
func (g *Base64StringKeyGenerator) KeyLength() int {
	return g.keyLength
}
