package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type authFixture struct {
	svc       *AuthService
	users     *fakeUserRepo
	roles     *fakeRoleRepo
	tokens    *fakeTokenRepo
	employees *fakeEmployeeRepo
}

func newAuthFixture(defaultRole string, roleNames ...string) *authFixture {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo(roleNames...)
	tokens := newFakeTokenRepo()
	employees := newFakeEmployeeRepo()
	svc := NewAuthService(
		users,
		roles,
		tokens,
		employees,
		&RoleResolver{Roles: roles, DefaultRole: defaultRole},
		helpers.NewJWTManager("test-secret", 15*time.Minute),
		24*time.Hour,
		testLogger(),
	)
	return &authFixture{svc: svc, users: users, roles: roles, tokens: tokens, employees: employees}
}

func (f *authFixture) register(t *testing.T, email, password string) *UserProfile {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)
	return u
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	f := newAuthFixture("", "SUPER-ADMIN", "ADMIN", "EMPLOYEE")

	u := f.register(t, "new@example.com", "password123")

	assert.Equal(t, "EMPLOYEE", u.Role)
	assert.Equal(t, []string{"EMPLOYEE"}, u.Roles)
	assert.True(t, u.IsActive)

	// No tokens issued on registration
	assert.Zero(t, f.tokens.liveCount(u.UserID))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	f.register(t, "dup@example.com", "password123")

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "password123",
		FullName: "Other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_EmptyCatalogueCreatesFallback(t *testing.T) {
	f := newAuthFixture("")

	u := f.register(t, "first@example.com", "password123")
	assert.Equal(t, "EMPLOYEE", u.Role)

	names, err := f.roles.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"EMPLOYEE"}, names)
}

func TestLogin_Succeeds(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	f.register(t, "user@example.com", "password123")

	u, pair, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{UserAgent: "test", IP: "127.0.0.1"})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1, f.tokens.liveCount(u.UserID))

	stored, err := f.users.GetByID(context.Background(), u.UserID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastActive)

	claims, err := f.svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.UserID, id)
	assert.Equal(t, []string{"EMPLOYEE"}, claims.Roles)
}

func TestLogin_RejectsIndistinguishably(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	u := f.register(t, "user@example.com", "password123")

	// Unknown email
	_, _, err := f.svc.Login(context.Background(), "nobody@example.com", "password123", ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Wrong password
	_, _, err = f.svc.Login(context.Background(), "user@example.com", "wrong-password", ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Deactivated account
	inactive := false
	_, err = NewUserAdminService(f.users, f.roles, f.employees, f.svc.Resolver, testLogger(), nil, "").
		PatchUser(context.Background(), u.UserID, PatchUserInput{IsActive: &inactive})
	require.NoError(t, err)
	_, _, err = f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")

	legacy, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Email: "legacy@example.com", Password: string(legacy), FullName: "Legacy", IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))

	_, _, err = f.svc.Login(context.Background(), "legacy@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	stored, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, helpers.NeedsUpgrade(stored.Password))
	assert.True(t, helpers.VerifyPassword("password123", stored.Password))
}

func TestRefresh_RotatesToken(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	u := f.register(t, "user@example.com", "password123")

	_, pair, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	_, next, err := f.svc.Refresh(context.Background(), pair.RefreshToken, ClientMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Still exactly one live token per chain
	assert.Equal(t, 1, f.tokens.liveCount(u.UserID))

	// The consumed token is single-use
	_, _, err = f.svc.Refresh(context.Background(), pair.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The replacement still works
	_, _, err = f.svc.Refresh(context.Background(), next.RefreshToken, ClientMeta{})
	require.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")

	_, _, err := f.svc.Refresh(context.Background(), "never-issued", ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_CarriesCurrentRoles(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE", "ADMIN")
	u := f.register(t, "user@example.com", "password123")

	_, pair, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	// Promote after login; the refreshed access token must see it.
	admin, err := f.roles.GetByName(context.Background(), "ADMIN")
	require.NoError(t, err)
	require.NoError(t, f.roles.Assign(context.Background(), u.UserID, admin.ID))

	_, next, err := f.svc.Refresh(context.Background(), pair.RefreshToken, ClientMeta{})
	require.NoError(t, err)

	claims, err := f.svc.JWT.ParseAccessToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN", "EMPLOYEE"}, claims.Roles)
}

func TestRefresh_InactiveUserKillsChain(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	u := f.register(t, "user@example.com", "password123")

	_, pair, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	inactive := false
	_, err = NewUserAdminService(f.users, f.roles, f.employees, f.svc.Resolver, testLogger(), nil, "").
		PatchUser(context.Background(), u.UserID, PatchUserInput{IsActive: &inactive})
	require.NoError(t, err)

	_, _, err = f.svc.Refresh(context.Background(), pair.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, ErrAccountInactive)
	assert.Zero(t, f.tokens.liveCount(u.UserID))
}

func TestLogout_RevokesEverything(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	u := f.register(t, "user@example.com", "password123")

	_, a, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	require.NoError(t, err)
	_, b, err := f.svc.Login(context.Background(), "user@example.com", "password123", ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.tokens.liveCount(u.UserID))

	require.NoError(t, f.svc.Logout(context.Background(), u.UserID))
	assert.Zero(t, f.tokens.liveCount(u.UserID))

	_, _, err = f.svc.Refresh(context.Background(), a.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, _, err = f.svc.Refresh(context.Background(), b.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestUpdateMyPhoto_StripsDataURI(t *testing.T) {
	f := newAuthFixture("", "EMPLOYEE")
	u := f.register(t, "user@example.com", "password123")

	p, err := f.svc.UpdateMyPhoto(context.Background(), u.UserID, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "AAAA", p.ProfilePhoto)

	p, err = f.svc.UpdateMyPhoto(context.Background(), u.UserID, "BBBB")
	require.NoError(t, err)
	assert.Equal(t, "BBBB", p.ProfilePhoto)
}
