package repository

import (
	"context"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// RoleRepository manages the role catalogue and user-role assignments.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// ListNames returns all role names ordered by name.
	ListNames(ctx context.Context) ([]string, error)
	// Ensure returns the role with the given name, creating it if absent.
	Ensure(ctx context.Context, name string) (*entity.Role, error)
	Assign(ctx context.Context, userID int64, roleID int32) error
	// ReplaceForUser replaces the user's role set with exactly the given roles.
	ReplaceForUser(ctx context.Context, userID int64, roleIDs []int32) error
	// NamesForUser returns the current role names held by the user.
	NamesForUser(ctx context.Context, userID int64) ([]string, error)
}
