package repository

import (
	"context"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// EmployeeRepository manages HR profiles attached to users.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByUserID(ctx context.Context, userID int64) (*entity.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Employee, error)
}
