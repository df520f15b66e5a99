package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
)

type stubUserRepo struct {
	users map[int64]*entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) Update(context.Context, *entity.User) error          { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, int64, string) error { return nil }
func (s *stubUserRepo) TouchLastActive(context.Context, int64) error        { return nil }
func (s *stubUserRepo) List(context.Context, string) ([]*entity.User, error) {
	return nil, nil
}

type stubRoleRepo struct {
	byUser map[int64][]string
}

func (s *stubRoleRepo) GetByName(context.Context, string) (*entity.Role, error) {
	return nil, repo.ErrNotFound
}
func (s *stubRoleRepo) ListNames(context.Context) ([]string, error) { return nil, nil }
func (s *stubRoleRepo) Ensure(context.Context, string) (*entity.Role, error) {
	return nil, repo.ErrNotFound
}
func (s *stubRoleRepo) Assign(context.Context, int64, int32) error          { return nil }
func (s *stubRoleRepo) ReplaceForUser(context.Context, int64, []int32) error { return nil }
func (s *stubRoleRepo) NamesForUser(_ context.Context, userID int64) ([]string, error) {
	return s.byUser[userID], nil
}

func setupAuthRouter(t *testing.T, jwt *helpers.JWTManager, users *stubUserRepo, roles *stubRoleRepo, required ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/")
	grp.Use(Auth(jwt, users, roles))
	if len(required) > 0 {
		grp.Use(RequireRoles(required...))
	}
	grp.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromCtx(c), "roles": RolesFromCtx(c)})
	})
	return r
}

func TestAuth_AllowsValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Minute)
	users := &stubUserRepo{users: map[int64]*entity.User{
		7: {ID: 7, Email: "u@example.com", IsActive: true},
	}}
	roles := &stubRoleRepo{byUser: map[int64][]string{7: {"EMPLOYEE"}}}
	r := setupAuthRouter(t, jwt, users, roles)

	token, _, err := jwt.GenerateAccessToken(7, []string{"EMPLOYEE"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuth_RejectsMissingAndMalformed(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Minute)
	r := setupAuthRouter(t, jwt, &stubUserRepo{}, &stubRoleRepo{})

	for _, header := range []string{"", "Token abc", "Bearer garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_RejectsInactiveOrMissingUser(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Minute)
	users := &stubUserRepo{users: map[int64]*entity.User{
		7: {ID: 7, IsActive: false},
	}}
	r := setupAuthRouter(t, jwt, users, &stubRoleRepo{})

	for _, id := range []int64{7, 8} {
		token, _, err := jwt.GenerateAccessToken(id, nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "user %d", id)
	}
}

func TestRequireRoles(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Minute)
	users := &stubUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: true},
	}}
	roles := &stubRoleRepo{byUser: map[int64][]string{
		1: {"ADMIN"},
		2: {"EMPLOYEE"},
	}}
	// Allow-list entries are normalized, so a lowercase config value still works
	r := setupAuthRouter(t, jwt, users, roles, "super admin", "admin")

	cases := []struct {
		userID int64
		want   int
	}{
		{1, http.StatusOK},
		{2, http.StatusForbidden},
	}
	for _, tc := range cases {
		token, _, err := jwt.GenerateAccessToken(tc.userID, nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "user %d", tc.userID)
	}
}
