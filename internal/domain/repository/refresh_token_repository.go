package repository

import (
	"context"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// RefreshTokenRepository manages the refresh token lifecycle. Tokens are keyed
// by the SHA-256 digest of the raw value and are revoked, never deleted.
type RefreshTokenRepository interface {
	Create(ctx context.Context, t *entity.RefreshToken) error
	// Rotate atomically revokes the live token matching digest and inserts
	// replacement for the same user, in a single transaction. It returns the
	// owning user id. ErrNotFound covers missing, expired, and already-revoked
	// digests, so a replayed token fails here. If inserting the replacement
	// fails the revocation is rolled back.
	Rotate(ctx context.Context, digest string, replacement *entity.RefreshToken) (int64, error)
	RevokeAllForUser(ctx context.Context, userID int64) error
}
