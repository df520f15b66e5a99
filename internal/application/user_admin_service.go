package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmployeeConflict = errors.New("employee_id or aadhar_no already exists")
)

// UserAdminService covers the role-gated user management endpoints:
// onboarding employees, listing and patching accounts, and role assignment.
type UserAdminService struct {
	Users        repo.UserRepository
	Roles        repo.RoleRepository
	Employees    repo.EmployeeRepository
	Resolver     *RoleResolver
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserAdminService(
	users repo.UserRepository,
	roles repo.RoleRepository,
	employees repo.EmployeeRepository,
	resolver *RoleResolver,
	logger *logrus.Logger,
	es *elasticsearch.Client,
	esUsersIndex string,
) *UserAdminService {
	return &UserAdminService{
		Users:        users,
		Roles:        roles,
		Employees:    employees,
		Resolver:     resolver,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type CreateUserInput struct {
	Email        string
	FullName     string
	Password     string
	ProfilePhoto string
	Role         string // optional, falls back to the resolved default
	EmployeeID   string
	Phone        string
	Address      string
	FathersName  string
	AadharNo     string
	DateOfBirth  time.Time
	WorkPosition string
}

// CreateUser onboards an account together with its HR profile and one role.
func (s *UserAdminService) CreateUser(ctx context.Context, in CreateUserInput) (*UserProfile, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Employees.GetByEmployeeID(ctx, in.EmployeeID); err == nil {
		return nil, ErrEmployeeConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        in.Email,
		Password:     hash,
		FullName:     in.FullName,
		ProfilePhoto: in.ProfilePhoto,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	e := &entity.Employee{
		UserID:       u.ID,
		EmployeeID:   in.EmployeeID,
		Phone:        in.Phone,
		Address:      in.Address,
		FathersName:  in.FathersName,
		AadharNo:     in.AadharNo,
		DateOfBirth:  in.DateOfBirth,
		WorkPosition: in.WorkPosition,
	}
	if err := s.Employees.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmployeeConflict
		}
		return nil, err
	}

	role, err := s.wantedRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Roles.ReplaceForUser(ctx, u.ID, []int32{role.ID}); err != nil {
		return nil, err
	}

	p := toUserProfile(u, []string{role.Name}, e)
	s.indexUser(ctx, p)
	return p, nil
}

// ListUsers returns projections newest first, optionally filtered by a text
// query on email/name and by exact employee id.
func (s *UserAdminService) ListUsers(ctx context.Context, q, employeeID string) ([]*UserProfile, error) {
	rows, err := s.Users.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*UserProfile, 0, len(rows))
	for _, u := range rows {
		p, err := s.project(ctx, u)
		if err != nil {
			return nil, err
		}
		if employeeID != "" && (p.Employee == nil || p.Employee.EmployeeID != employeeID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *UserAdminService) GetUser(ctx context.Context, id int64) (*UserProfile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.project(ctx, u)
}

type PatchUserInput struct {
	FullName     *string
	ProfilePhoto *string
	IsActive     *bool
}

// PatchUser applies a partial admin update. Deactivation here is the only
// way an account leaves service; rows are never deleted.
func (s *UserAdminService) PatchUser(ctx context.Context, id int64, in PatchUserInput) (*UserProfile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.ProfilePhoto != nil {
		u.ProfilePhoto = strings.TrimSpace(*in.ProfilePhoto)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	p, err := s.project(ctx, u)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, p)
	return p, nil
}

// AssignRoles replaces a user's role set. Each requested name is normalized
// and created in the catalogue if missing.
func (s *UserAdminService) AssignRoles(ctx context.Context, userID int64, roles []string) (*UserProfile, error) {
	wanted := NormalizeRoles(roles)
	if len(wanted) == 0 {
		return nil, ErrInvalidRole
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	ids := make([]int32, 0, len(wanted))
	for _, name := range wanted {
		r, err := s.Roles.Ensure(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, r.ID)
	}
	if err := s.Roles.ReplaceForUser(ctx, u.ID, ids); err != nil {
		return nil, err
	}
	p, err := s.project(ctx, u)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, p)
	return p, nil
}

func (s *UserAdminService) wantedRole(ctx context.Context, raw string) (*entity.Role, error) {
	if name := NormalizeRole(raw); name != "" {
		return s.Roles.Ensure(ctx, name)
	}
	return s.Resolver.ResolveDefault(ctx)
}

func (s *UserAdminService) project(ctx context.Context, u *entity.User) (*UserProfile, error) {
	roles, err := s.Roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	var emp *entity.Employee
	if e, err := s.Employees.GetByUserID(ctx, u.ID); err == nil {
		emp = e
	}
	return toUserProfile(u, roles, emp), nil
}

// indexUser pushes the latest projection to Elasticsearch. Search is a
// convenience layer; indexing failures are logged and swallowed.
func (s *UserAdminService) indexUser(ctx context.Context, p *UserProfile) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"user_id":    p.UserID,
		"email":      p.Email,
		"full_name":  p.FullName,
		"roles":      p.Roles,
		"is_active":  p.IsActive,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	if p.Employee != nil {
		doc["employee_id"] = p.Employee.EmployeeID
		doc["work_position"] = p.Employee.WorkPosition
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: fmt.Sprintf("%d", p.UserID),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.UserID).Warn("es index response error")
	}
}

// SearchUsers performs a multi_match search on email, name, and employee id.
func (s *UserAdminService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "full_name", "employee_id"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
