package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	"github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

// querier is the subset of pgxpool.Pool and pgx.Tx the org queries need, so
// the get-or-create helpers run the same inside and outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type OrgRepository struct {
	pool *pgxpool.Pool
}

func NewOrgRepository(pool *pgxpool.Pool) *OrgRepository {
	return &OrgRepository{pool: pool}
}

const deptColumns = `dept_id, dept_name, COALESCE(description, ''), created_at, created_by, updated_at, updated_by`
const subDeptColumns = `sub_dept_id, dept_id, sub_dept_name, COALESCE(description, ''), created_at, created_by, updated_at, updated_by`
const desigColumns = `designation_id, designation_name, dept_id, sub_dept_id, COALESCE(description, ''), created_at, created_by, updated_at, updated_by`

func scanDepartment(row pgx.Row) (*entity.Department, error) {
	d := &entity.Department{}
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.CreatedBy,
		&d.UpdatedAt, &d.UpdatedBy); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func scanSubDepartment(row pgx.Row) (*entity.SubDepartment, error) {
	sd := &entity.SubDepartment{}
	if err := row.Scan(&sd.ID, &sd.DeptID, &sd.Name, &sd.Description, &sd.CreatedAt,
		&sd.CreatedBy, &sd.UpdatedAt, &sd.UpdatedBy); err != nil {
		return nil, mapErr(err)
	}
	return sd, nil
}

func scanDesignation(row pgx.Row) (*entity.Designation, error) {
	d := &entity.Designation{}
	if err := row.Scan(&d.ID, &d.Name, &d.DeptID, &d.SubDeptID, &d.Description,
		&d.CreatedAt, &d.CreatedBy, &d.UpdatedAt, &d.UpdatedBy); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func getOrCreateDepartment(ctx context.Context, q querier, name, description string, createdBy *int64) (*entity.Department, error) {
	d, err := scanDepartment(q.QueryRow(ctx, `
		SELECT `+deptColumns+` FROM department_list WHERE dept_name = $1
	`, name))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return scanDepartment(q.QueryRow(ctx, `
		INSERT INTO department_list (dept_name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING `+deptColumns+`
	`, name, nullable(description), createdBy))
}

func getOrCreateSubDepartment(ctx context.Context, q querier, deptID int32, name, description string, createdBy *int64) (*entity.SubDepartment, error) {
	sd, err := scanSubDepartment(q.QueryRow(ctx, `
		SELECT `+subDeptColumns+` FROM sub_department_list
		WHERE dept_id = $1 AND sub_dept_name = $2
	`, deptID, name))
	if err == nil {
		return sd, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return scanSubDepartment(q.QueryRow(ctx, `
		INSERT INTO sub_department_list (dept_id, sub_dept_name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+subDeptColumns+`
	`, deptID, name, nullable(description), createdBy))
}

func getOrCreateDesignation(ctx context.Context, q querier, name string, deptID, subDeptID *int32, description string, createdBy *int64) (*entity.Designation, error) {
	d, err := scanDesignation(q.QueryRow(ctx, `
		SELECT `+desigColumns+` FROM designation_list
		WHERE designation_name = $1
		  AND dept_id IS NOT DISTINCT FROM $2
		  AND sub_dept_id IS NOT DISTINCT FROM $3
	`, name, deptID, subDeptID))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return scanDesignation(q.QueryRow(ctx, `
		INSERT INTO designation_list (designation_name, dept_id, sub_dept_id, description, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+desigColumns+`
	`, name, deptID, subDeptID, nullable(description), createdBy))
}

func (r *OrgRepository) GetOrCreateDepartment(ctx context.Context, name, description string, createdBy *int64) (*entity.Department, error) {
	return getOrCreateDepartment(ctx, r.pool, name, description, createdBy)
}

func (r *OrgRepository) GetOrCreateSubDepartment(ctx context.Context, deptID int32, name, description string, createdBy *int64) (*entity.SubDepartment, error) {
	return getOrCreateSubDepartment(ctx, r.pool, deptID, name, description, createdBy)
}

func (r *OrgRepository) GetOrCreateDesignation(ctx context.Context, name string, deptID, subDeptID *int32, description string, createdBy *int64) (*entity.Designation, error) {
	return getOrCreateDesignation(ctx, r.pool, name, deptID, subDeptID, description, createdBy)
}

func (r *OrgRepository) CreateTree(ctx context.Context, in repository.OrgTreeInput) (*repository.OrgTree, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dept, err := getOrCreateDepartment(ctx, tx, in.DeptName, in.DeptDescription, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	sub, err := getOrCreateSubDepartment(ctx, tx, dept.ID, in.SubDeptName, in.SubDeptDesc, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	desig, err := getOrCreateDesignation(ctx, tx, in.DesignationName, &dept.ID, &sub.ID, in.DesignationDesc, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &repository.OrgTree{Department: dept, SubDepartment: sub, Designation: desig}, nil
}

func (r *OrgRepository) GetDepartment(ctx context.Context, id int32) (*entity.Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx, `
		SELECT `+deptColumns+` FROM department_list WHERE dept_id = $1
	`, id))
}

func (r *OrgRepository) GetSubDepartment(ctx context.Context, id int32) (*entity.SubDepartment, error) {
	return scanSubDepartment(r.pool.QueryRow(ctx, `
		SELECT `+subDeptColumns+` FROM sub_department_list WHERE sub_dept_id = $1
	`, id))
}

func (r *OrgRepository) GetDesignation(ctx context.Context, id int32) (*entity.Designation, error) {
	return scanDesignation(r.pool.QueryRow(ctx, `
		SELECT `+desigColumns+` FROM designation_list WHERE designation_id = $1
	`, id))
}

func (r *OrgRepository) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+deptColumns+` FROM department_list ORDER BY dept_name
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*entity.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *OrgRepository) ListSubDepartments(ctx context.Context, deptID *int32) ([]*entity.SubDepartment, error) {
	sql := `SELECT ` + subDeptColumns + ` FROM sub_department_list`
	args := []any{}
	if deptID != nil {
		sql += ` WHERE dept_id = $1`
		args = append(args, *deptID)
	}
	sql += ` ORDER BY sub_dept_name`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*entity.SubDepartment
	for rows.Next() {
		sd, err := scanSubDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}

func (r *OrgRepository) ListDesignations(ctx context.Context, deptID, subDeptID *int32) ([]*entity.Designation, error) {
	sql := `SELECT ` + desigColumns + ` FROM designation_list WHERE 1=1`
	args := []any{}
	if deptID != nil {
		args = append(args, *deptID)
		sql += ` AND dept_id = $1`
	}
	if subDeptID != nil {
		args = append(args, *subDeptID)
		if len(args) == 1 {
			sql += ` AND sub_dept_id = $1`
		} else {
			sql += ` AND sub_dept_id = $2`
		}
	}
	sql += ` ORDER BY designation_name`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*entity.Designation
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.OrgRepository = (*OrgRepository)(nil)
