package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	"github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *entity.RefreshToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.UserID, t.TokenHash, t.ExpiresAt, t.UserAgent, t.IP)

	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return mapErr(err)
	}
	return nil
}

// Rotate revokes the live token matching digest and inserts the replacement
// in one transaction. The conditional UPDATE is the conflict check: of two
// concurrent rotations of the same digest only one sees an affected row, the
// other gets ErrNotFound. A failed insert rolls the revocation back.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, digest string, replacement *entity.RefreshToken) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID int64
	err = tx.QueryRow(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token_hash = $1 AND NOT revoked AND expires_at > now()
		RETURNING user_id
	`, digest).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	replacement.UserID = userID
	err = tx.QueryRow(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, replacement.UserID, replacement.TokenHash, replacement.ExpiresAt,
		replacement.UserAgent, replacement.IP).Scan(&replacement.ID, &replacement.CreatedAt)
	if err != nil {
		return 0, mapErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE user_id = $1 AND NOT revoked
	`, userID)
	return mapErr(err)
}

var _ repository.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
