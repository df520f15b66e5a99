package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

// OrgService exposes the organizational directory: departments,
// sub-departments, and designations, all with get-or-create creation.
type OrgService struct {
	Org    repo.OrgRepository
	Logger *logrus.Logger
}

func NewOrgService(org repo.OrgRepository, logger *logrus.Logger) *OrgService {
	return &OrgService{Org: org, Logger: logger}
}

func (s *OrgService) CreateDepartment(ctx context.Context, name, description string, createdBy *int64) (*entity.Department, error) {
	return s.Org.GetOrCreateDepartment(ctx, name, description, createdBy)
}

func (s *OrgService) CreateSubDepartment(ctx context.Context, deptID int32, name, description string, createdBy *int64) (*entity.SubDepartment, error) {
	return s.Org.GetOrCreateSubDepartment(ctx, deptID, name, description, createdBy)
}

func (s *OrgService) CreateDesignation(ctx context.Context, name string, deptID, subDeptID *int32, description string, createdBy *int64) (*entity.Designation, error) {
	return s.Org.GetOrCreateDesignation(ctx, name, deptID, subDeptID, description, createdBy)
}

// CreateTree creates a department, one of its sub-departments, and a
// designation under both in a single transaction.
func (s *OrgService) CreateTree(ctx context.Context, in repo.OrgTreeInput) (*repo.OrgTree, error) {
	return s.Org.CreateTree(ctx, in)
}

func (s *OrgService) GetDepartment(ctx context.Context, id int32) (*entity.Department, error) {
	return s.Org.GetDepartment(ctx, id)
}

func (s *OrgService) GetSubDepartment(ctx context.Context, id int32) (*entity.SubDepartment, error) {
	return s.Org.GetSubDepartment(ctx, id)
}

func (s *OrgService) GetDesignation(ctx context.Context, id int32) (*entity.Designation, error) {
	return s.Org.GetDesignation(ctx, id)
}

func (s *OrgService) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	return s.Org.ListDepartments(ctx)
}

func (s *OrgService) ListSubDepartments(ctx context.Context, deptID *int32) ([]*entity.SubDepartment, error) {
	return s.Org.ListSubDepartments(ctx, deptID)
}

func (s *OrgService) ListDesignations(ctx context.Context, deptID, subDeptID *int32) ([]*entity.Designation, error) {
	return s.Org.ListDesignations(ctx, deptID, subDeptID)
}
