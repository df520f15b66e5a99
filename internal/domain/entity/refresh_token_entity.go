package entity

import "time"

// RefreshToken is one issued refresh token. Only the SHA-256 digest of the
// raw value is kept; the raw value leaves the server once and is never stored.
type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	UserAgent string
	IP        string
	CreatedAt time.Time
}
