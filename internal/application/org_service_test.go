package application

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

type fakeOrgRepo struct {
	nextID int32
	depts  map[string]*entity.Department
	subs   map[string]*entity.SubDepartment
	desigs []*entity.Designation
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		depts: map[string]*entity.Department{},
		subs:  map[string]*entity.SubDepartment{},
	}
}

func (f *fakeOrgRepo) GetOrCreateDepartment(_ context.Context, name, description string, createdBy *int64) (*entity.Department, error) {
	if d, ok := f.depts[name]; ok {
		cp := *d
		return &cp, nil
	}
	f.nextID++
	d := &entity.Department{ID: f.nextID, Name: name, Description: description, CreatedBy: createdBy}
	f.depts[name] = d
	cp := *d
	return &cp, nil
}

func (f *fakeOrgRepo) GetOrCreateSubDepartment(_ context.Context, deptID int32, name, description string, createdBy *int64) (*entity.SubDepartment, error) {
	key := strconv.Itoa(int(deptID)) + "/" + name
	if sd, ok := f.subs[key]; ok {
		cp := *sd
		return &cp, nil
	}
	f.nextID++
	sd := &entity.SubDepartment{ID: f.nextID, DeptID: deptID, Name: name, Description: description, CreatedBy: createdBy}
	f.subs[key] = sd
	cp := *sd
	return &cp, nil
}

func (f *fakeOrgRepo) GetOrCreateDesignation(_ context.Context, name string, deptID, subDeptID *int32, description string, createdBy *int64) (*entity.Designation, error) {
	for _, d := range f.desigs {
		if d.Name == name && eq32(d.DeptID, deptID) && eq32(d.SubDeptID, subDeptID) {
			cp := *d
			return &cp, nil
		}
	}
	f.nextID++
	d := &entity.Designation{ID: f.nextID, Name: name, DeptID: deptID, SubDeptID: subDeptID, Description: description, CreatedBy: createdBy}
	f.desigs = append(f.desigs, d)
	cp := *d
	return &cp, nil
}

func (f *fakeOrgRepo) CreateTree(ctx context.Context, in repo.OrgTreeInput) (*repo.OrgTree, error) {
	d, err := f.GetOrCreateDepartment(ctx, in.DeptName, in.DeptDescription, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	sd, err := f.GetOrCreateSubDepartment(ctx, d.ID, in.SubDeptName, in.SubDeptDesc, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	dg, err := f.GetOrCreateDesignation(ctx, in.DesignationName, &d.ID, &sd.ID, in.DesignationDesc, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &repo.OrgTree{Department: d, SubDepartment: sd, Designation: dg}, nil
}

func (f *fakeOrgRepo) GetDepartment(_ context.Context, id int32) (*entity.Department, error) {
	for _, d := range f.depts {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeOrgRepo) GetSubDepartment(_ context.Context, id int32) (*entity.SubDepartment, error) {
	for _, sd := range f.subs {
		if sd.ID == id {
			cp := *sd
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeOrgRepo) GetDesignation(_ context.Context, id int32) (*entity.Designation, error) {
	for _, d := range f.desigs {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeOrgRepo) ListDepartments(context.Context) ([]*entity.Department, error) {
	out := make([]*entity.Department, 0, len(f.depts))
	for _, d := range f.depts {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrgRepo) ListSubDepartments(_ context.Context, deptID *int32) ([]*entity.SubDepartment, error) {
	out := []*entity.SubDepartment{}
	for _, sd := range f.subs {
		if deptID != nil && sd.DeptID != *deptID {
			continue
		}
		cp := *sd
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrgRepo) ListDesignations(_ context.Context, deptID, subDeptID *int32) ([]*entity.Designation, error) {
	out := []*entity.Designation{}
	for _, d := range f.desigs {
		if deptID != nil && !eq32(d.DeptID, deptID) {
			continue
		}
		if subDeptID != nil && !eq32(d.SubDeptID, subDeptID) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func eq32(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var _ repo.OrgRepository = (*fakeOrgRepo)(nil)

func TestOrgService_GetOrCreateIdempotent(t *testing.T) {
	svc := NewOrgService(newFakeOrgRepo(), testLogger())

	a, err := svc.CreateDepartment(context.Background(), "Engineering", "builds things", nil)
	require.NoError(t, err)
	b, err := svc.CreateDepartment(context.Background(), "Engineering", "duplicate call", nil)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	depts, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Len(t, depts, 1)
}

func TestOrgService_CreateTree(t *testing.T) {
	svc := NewOrgService(newFakeOrgRepo(), testLogger())

	in := repo.OrgTreeInput{
		DeptName:        "Engineering",
		SubDeptName:     "Platform",
		DesignationName: "SRE",
	}
	tree, err := svc.CreateTree(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, tree.Department)
	require.NotNil(t, tree.SubDepartment)
	require.NotNil(t, tree.Designation)
	assert.Equal(t, tree.Department.ID, tree.SubDepartment.DeptID)
	require.NotNil(t, tree.Designation.DeptID)
	assert.Equal(t, tree.Department.ID, *tree.Designation.DeptID)

	// Repeating the same tree reuses every node
	again, err := svc.CreateTree(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, tree.Department.ID, again.Department.ID)
	assert.Equal(t, tree.SubDepartment.ID, again.SubDepartment.ID)
	assert.Equal(t, tree.Designation.ID, again.Designation.ID)
}

func TestOrgService_FilteredLists(t *testing.T) {
	svc := NewOrgService(newFakeOrgRepo(), testLogger())

	t1, err := svc.CreateTree(context.Background(), repo.OrgTreeInput{
		DeptName: "Engineering", SubDeptName: "Platform", DesignationName: "SRE",
	})
	require.NoError(t, err)
	_, err = svc.CreateTree(context.Background(), repo.OrgTreeInput{
		DeptName: "Finance", SubDeptName: "Payroll", DesignationName: "Accountant",
	})
	require.NoError(t, err)

	subs, err := svc.ListSubDepartments(context.Background(), &t1.Department.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Platform", subs[0].Name)

	desigs, err := svc.ListDesignations(context.Background(), &t1.Department.ID, nil)
	require.NoError(t, err)
	require.Len(t, desigs, 1)
	assert.Equal(t, "SRE", desigs[0].Name)
}
