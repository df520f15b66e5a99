package helpers

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptSHA256Prefix marks hashes produced with the preferred scheme: the raw
// password is pre-hashed with SHA-256 (base64) before bcrypt, which lifts
// bcrypt's 72-byte input limit. Bare "$2..." hashes from the legacy scheme
// still verify but are flagged for upgrade.
const bcryptSHA256Prefix = "bcrypt-sha256$"

func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword hashes the plain text password using the preferred scheme.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return bcryptSHA256Prefix + string(b), nil
}

// VerifyPassword compares a stored hash with a plain password. Both the
// preferred scheme and legacy plain bcrypt are accepted; a malformed stored
// hash verifies as false.
func VerifyPassword(plain, stored string) bool {
	if h, ok := strings.CutPrefix(stored, bcryptSHA256Prefix); ok {
		return bcrypt.CompareHashAndPassword([]byte(h), prehash(plain)) == nil
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// NeedsUpgrade reports whether a stored hash was produced by a deprecated
// scheme and should be re-hashed after the next successful verification.
func NeedsUpgrade(stored string) bool {
	return !strings.HasPrefix(stored, bcryptSHA256Prefix)
}
