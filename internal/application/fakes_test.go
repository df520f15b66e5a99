package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range f.users {
		if strings.EqualFold(e.Email, u.Email) {
			return repo.ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	cp.UpdatedAt = time.Now()
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) TouchLastActive(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	now := time.Now()
	u.LastActive = &now
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, q string) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(q)) &&
			!strings.Contains(strings.ToLower(u.FullName), strings.ToLower(q)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeRoleRepo struct {
	nextID    int32
	roles     map[string]*entity.Role
	userRoles map[int64][]int32
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	f := &fakeRoleRepo{roles: map[string]*entity.Role{}, userRoles: map[int64][]int32{}}
	for _, n := range names {
		_, _ = f.Ensure(context.Background(), n)
	}
	return f
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r, ok := f.roles[name]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) ListNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.roles))
	for n := range f.roles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRoleRepo) Ensure(_ context.Context, name string) (*entity.Role, error) {
	if r, ok := f.roles[name]; ok {
		cp := *r
		return &cp, nil
	}
	f.nextID++
	r := &entity.Role{ID: f.nextID, Name: name}
	f.roles[name] = r
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) Assign(_ context.Context, userID int64, roleID int32) error {
	for _, id := range f.userRoles[userID] {
		if id == roleID {
			return nil
		}
	}
	f.userRoles[userID] = append(f.userRoles[userID], roleID)
	return nil
}

func (f *fakeRoleRepo) ReplaceForUser(_ context.Context, userID int64, roleIDs []int32) error {
	f.userRoles[userID] = append([]int32(nil), roleIDs...)
	return nil
}

func (f *fakeRoleRepo) NamesForUser(_ context.Context, userID int64) ([]string, error) {
	names := []string{}
	for _, id := range f.userRoles[userID] {
		for _, r := range f.roles {
			if r.ID == id {
				names = append(names, r.Name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

type fakeTokenRepo struct {
	nextID int64
	tokens map[string]*entity.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*entity.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, t *entity.RefreshToken) error {
	if _, ok := f.tokens[t.TokenHash]; ok {
		return repo.ErrConflict
	}
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	cp := *t
	f.tokens[t.TokenHash] = &cp
	return nil
}

func (f *fakeTokenRepo) Rotate(_ context.Context, digest string, replacement *entity.RefreshToken) (int64, error) {
	cur, ok := f.tokens[digest]
	if !ok || cur.Revoked || time.Now().After(cur.ExpiresAt) {
		return 0, repo.ErrNotFound
	}
	cur.Revoked = true
	f.nextID++
	replacement.ID = f.nextID
	replacement.UserID = cur.UserID
	replacement.CreatedAt = time.Now()
	cp := *replacement
	f.tokens[replacement.TokenHash] = &cp
	return cur.UserID, nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) liveCount(userID int64) int {
	n := 0
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Revoked && time.Now().Before(t.ExpiresAt) {
			n++
		}
	}
	return n
}

type fakeEmployeeRepo struct {
	byUser map[int64]*entity.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byUser: map[int64]*entity.Employee{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	for _, cur := range f.byUser {
		if cur.EmployeeID == e.EmployeeID || cur.AadharNo == e.AadharNo {
			return repo.ErrConflict
		}
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.byUser[e.UserID] = &cp
	return nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID int64) (*entity.Employee, error) {
	e, ok := f.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (*entity.Employee, error) {
	for _, e := range f.byUser {
		if e.EmployeeID == employeeID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

var (
	_ repo.UserRepository         = (*fakeUserRepo)(nil)
	_ repo.RoleRepository         = (*fakeRoleRepo)(nil)
	_ repo.RefreshTokenRepository = (*fakeTokenRepo)(nil)
	_ repo.EmployeeRepository     = (*fakeEmployeeRepo)(nil)
)
