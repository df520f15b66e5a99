package repository

import (
	"context"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
)

// OrgTree is the result of creating a full department/sub-department/designation
// chain in one call.
type OrgTree struct {
	Department    *entity.Department
	SubDepartment *entity.SubDepartment
	Designation   *entity.Designation
}

// OrgTreeInput carries the names and descriptions for CreateTree.
type OrgTreeInput struct {
	DeptName        string
	DeptDescription string
	SubDeptName     string
	SubDeptDesc     string
	DesignationName string
	DesignationDesc string
	CreatedBy       *int64
}

// OrgRepository manages the organizational directory. All creates have
// get-or-create semantics keyed on the unique name constraints.
type OrgRepository interface {
	GetOrCreateDepartment(ctx context.Context, name, description string, createdBy *int64) (*entity.Department, error)
	GetOrCreateSubDepartment(ctx context.Context, deptID int32, name, description string, createdBy *int64) (*entity.SubDepartment, error)
	GetOrCreateDesignation(ctx context.Context, name string, deptID, subDeptID *int32, description string, createdBy *int64) (*entity.Designation, error)
	// CreateTree runs the three get-or-creates inside one transaction.
	CreateTree(ctx context.Context, in OrgTreeInput) (*OrgTree, error)

	GetDepartment(ctx context.Context, id int32) (*entity.Department, error)
	GetSubDepartment(ctx context.Context, id int32) (*entity.SubDepartment, error)
	GetDesignation(ctx context.Context, id int32) (*entity.Designation, error)

	ListDepartments(ctx context.Context) ([]*entity.Department, error)
	ListSubDepartments(ctx context.Context, deptID *int32) ([]*entity.SubDepartment, error)
	ListDesignations(ctx context.Context, deptID, subDeptID *int32) ([]*entity.Designation, error)
}
