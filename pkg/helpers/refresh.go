package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// refreshTokenBytes is the raw entropy per refresh token (256 bits).
const refreshTokenBytes = 32

// RefreshTokenMaterial pairs the opaque value handed to the client with the
// digest that goes to the database. The raw value is never persisted.
type RefreshTokenMaterial struct {
	Raw    string
	Digest string
}

// NewRefreshToken generates a URL-safe opaque refresh token and its digest.
func NewRefreshToken() (RefreshTokenMaterial, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return RefreshTokenMaterial{}, err
	}
	raw := base64.RawURLEncoding.EncodeToString(b)
	return RefreshTokenMaterial{Raw: raw, Digest: DigestRefreshToken(raw)}, nil
}

// DigestRefreshToken computes the lowercase-hex SHA-256 storage key for a raw
// refresh token.
func DigestRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
