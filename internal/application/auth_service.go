package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrAccountInactive     = errors.New("account inactive")
	ErrUserNotFound        = errors.New("user not found")
)

// ClientMeta carries per-request client details recorded on refresh tokens.
type ClientMeta struct {
	UserAgent string
	IP        string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AuthService orchestrates registration, login, refresh rotation, and logout.
// Access tokens are stateless JWTs; refresh tokens are single-use rows keyed
// by digest and rotated on every refresh.
type AuthService struct {
	Users      repo.UserRepository
	Roles      repo.RoleRepository
	Tokens     repo.RefreshTokenRepository
	Employees  repo.EmployeeRepository
	Resolver   *RoleResolver
	JWT        *helpers.JWTManager
	RefreshTTL time.Duration
	Logger     *logrus.Logger
}

func NewAuthService(
	users repo.UserRepository,
	roles repo.RoleRepository,
	tokens repo.RefreshTokenRepository,
	employees repo.EmployeeRepository,
	resolver *RoleResolver,
	jwt *helpers.JWTManager,
	refreshTTL time.Duration,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		Users:      users,
		Roles:      roles,
		Tokens:     tokens,
		Employees:  employees,
		Resolver:   resolver,
		JWT:        jwt,
		RefreshTTL: refreshTTL,
		Logger:     logger,
	}
}

type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	ProfilePhoto string
}

// Register creates a user with the resolved default role. It does not issue
// tokens; login stays an explicit second call.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*UserProfile, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
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

	role, err := s.Resolver.ResolveDefault(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Roles.Assign(ctx, u.ID, role.ID); err != nil {
		return nil, err
	}
	return s.profile(ctx, u, []string{role.Name}), nil
}

// Login verifies credentials and issues an access/refresh pair. Unknown
// email, wrong password, and deactivated accounts are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*UserProfile, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.VerifyPassword(password, u.Password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	s.maybeUpgradeHash(ctx, u, password)

	if err := s.Users.TouchLastActive(ctx, u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("touch last_active failed")
	}

	roles, err := s.Roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.issuePair(ctx, u.ID, roles, meta)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return s.profile(ctx, u, roles), pair, nil
}

// Refresh consumes a raw refresh token, rotating it for a new pair. The
// presented token is revoked and replaced in one transaction, so replaying a
// rotated token fails and two concurrent refreshes cannot both succeed. The
// new access token carries the user's current role set, not the one embedded
// at login time.
func (s *AuthService) Refresh(ctx context.Context, raw string, meta ClientMeta) (*UserProfile, TokenPair, error) {
	mat, err := helpers.NewRefreshToken()
	if err != nil {
		return nil, TokenPair{}, err
	}
	rexp := time.Now().Add(s.RefreshTTL)
	replacement := &entity.RefreshToken{
		TokenHash: mat.Digest,
		ExpiresAt: rexp,
		UserAgent: truncate(meta.UserAgent, 255),
		IP:        meta.IP,
	}
	userID, err := s.Tokens.Rotate(ctx, helpers.DigestRefreshToken(raw), replacement)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidRefreshToken
		}
		return nil, TokenPair{}, err
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.IsActive {
		// Kill the chain entirely; a deactivated account keeps no live tokens.
		if rErr := s.Tokens.RevokeAllForUser(ctx, userID); rErr != nil {
			s.Logger.WithError(rErr).WithField("user_id", userID).Warn("revoke tokens for inactive user failed")
		}
		return nil, TokenPair{}, ErrAccountInactive
	}

	if err := s.Users.TouchLastActive(ctx, u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("touch last_active failed")
	}

	roles, err := s.Roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, roles)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair := TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       mat.Raw,
		RefreshTokenExpiry: rexp,
	}
	return s.profile(ctx, u, roles), pair, nil
}

// Logout revokes every refresh token the user holds.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.Tokens.RevokeAllForUser(ctx, userID)
}

// GetProfile returns the public projection for an authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	roles, err := s.Roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u, roles), nil
}

// UpdateMyPhoto replaces the caller's profile photo. A data-URI prefix is
// stripped so only the base64 payload is stored.
func (s *AuthService) UpdateMyPhoto(ctx context.Context, userID int64, photo string) (*UserProfile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p := strings.TrimSpace(photo)
	if strings.HasPrefix(p, "data:image") {
		if _, rest, ok := strings.Cut(p, ","); ok {
			p = rest
		}
	}
	u.ProfilePhoto = p
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	roles, err := s.Roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u, roles), nil
}

func (s *AuthService) issuePair(ctx context.Context, userID int64, roles []string, meta ClientMeta) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, roles)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("generate access token failed")
		return TokenPair{}, err
	}
	mat, err := helpers.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	rexp := time.Now().Add(s.RefreshTTL)
	rec := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: mat.Digest,
		ExpiresAt: rexp,
		UserAgent: truncate(meta.UserAgent, 255),
		IP:        meta.IP,
	}
	if err := s.Tokens.Create(ctx, rec); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       mat.Raw,
		RefreshTokenExpiry: rexp,
	}, nil
}

// maybeUpgradeHash re-hashes after a successful verification against a
// legacy-scheme hash. Failure is logged, never surfaced.
func (s *AuthService) maybeUpgradeHash(ctx context.Context, u *entity.User, password string) {
	if !helpers.NeedsUpgrade(u.Password) {
		return
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("password hash upgrade failed")
		return
	}
	u.Password = hash
}

func (s *AuthService) profile(ctx context.Context, u *entity.User, roles []string) *UserProfile {
	var emp *entity.Employee
	if s.Employees != nil {
		if e, err := s.Employees.GetByUserID(ctx, u.ID); err == nil {
			emp = e
		}
	}
	return toUserProfile(u, roles, emp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
