package repository

import (
	"context"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLastActive(ctx context.Context, id int64) error
	// List returns users newest first, optionally filtered by a case-insensitive
	// match on email or full name.
	List(ctx context.Context, q string) ([]*entity.User, error)
}
