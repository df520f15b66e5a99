package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	"github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	role := &entity.Role{}
	err := r.pool.QueryRow(ctx, `
		SELECT role_id, name FROM roles WHERE name = $1
	`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		return nil, mapErr(err)
	}
	return role, nil
}

func (r *RoleRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM roles ORDER BY name`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *RoleRepository) Ensure(ctx context.Context, name string) (*entity.Role, error) {
	role := &entity.Role{}
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING role_id, name
	`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		return nil, mapErr(err)
	}
	return role, nil
}

func (r *RoleRepository) Assign(ctx context.Context, userID int64, roleID int32) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, roleID)
	return mapErr(err)
}

func (r *RoleRepository) ReplaceForUser(ctx context.Context, userID int64, roleIDs []int32) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return mapErr(err)
	}
	for _, id := range roleIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		`, userID, id); err != nil {
			return mapErr(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *RoleRepository) NamesForUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
