package entity

import "time"

// Department, SubDepartment, and Designation form the organizational
// directory. Designation links optionally to a department and sub-department.

type Department struct {
	ID          int32
	Name        string
	Description string
	CreatedAt   time.Time
	CreatedBy   *int64
	UpdatedAt   *time.Time
	UpdatedBy   *int64
}

type SubDepartment struct {
	ID          int32
	DeptID      int32
	Name        string
	Description string
	CreatedAt   time.Time
	CreatedBy   *int64
	UpdatedAt   *time.Time
	UpdatedBy   *int64
}

type Designation struct {
	ID          int32
	Name        string
	DeptID      *int32
	SubDeptID   *int32
	Description string
	CreatedAt   time.Time
	CreatedBy   *int64
	UpdatedAt   *time.Time
	UpdatedBy   *int64
}
