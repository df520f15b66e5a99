package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	"github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `user_id, employee_id, phone, address, fathers_name, aadhar_no, date_of_birth, work_position, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	e := &entity.Employee{}
	if err := row.Scan(&e.UserID, &e.EmployeeID, &e.Phone, &e.Address, &e.FathersName,
		&e.AadharNo, &e.DateOfBirth, &e.WorkPosition, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (user_id, employee_id, phone, address, fathers_name, aadhar_no, date_of_birth, work_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, e.UserID, e.EmployeeID, e.Phone, e.Address, e.FathersName, e.AadharNo, e.DateOfBirth, e.WorkPosition)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Employee, error) {
	return scanEmployee(r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE user_id = $1
	`, userID))
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Employee, error) {
	return scanEmployee(r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE employee_id = $1
	`, employeeID))
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
