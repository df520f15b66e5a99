package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hrm-service/internal/container"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	handlers "github.com/oksasatya/go-hrm-service/internal/interface/http"
	"github.com/oksasatya/go-hrm-service/internal/interface/middleware"
)

// AuthModule wires authentication and user administration routes.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/refresh
// Protected: /api/auth/me, /api/auth/logout, and the /api/auth/users admin surface
type AuthModule struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	UserRepo repo.UserRepository
	RoleRepo repo.RoleRepository
}

func NewAuthModule(a *handlers.AuthHandler, u *handlers.UserHandler, users repo.UserRepository, roles repo.RoleRepository) *AuthModule {
	return &AuthModule{Auth: a, Users: u, UserRepo: users, RoleRepo: roles}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Auth.Register)
	rg.POST("/auth/login", loginLimiter, m.Auth.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Auth.Refresh)

	// Protected
	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(container.GetJWT(), m.UserRepo, m.RoleRepo))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/me", m.Auth.Me)
		auth.POST("/logout", m.Auth.Logout)
		auth.PATCH("/me/photo", m.Auth.UpdateMyPhoto)
	}

	// Admin-only user management
	admin := auth.Group("/")
	admin.Use(middleware.RequireRoles(cfg.UsersEndpointAllowed()...))
	{
		admin.POST("/users", m.Users.CreateUser)
		admin.GET("/users", m.Users.ListUsers)
		admin.GET("/users/search", m.Users.SearchUsers)
		admin.PATCH("/users/:id", m.Users.PatchUser)
		admin.POST("/assign-roles", m.Users.AssignRoles)
	}

	// Single-user reads open to a wider role set
	reader := auth.Group("/")
	reader.Use(middleware.RequireRoles(cfg.UserGetEndpointAllowed()...))
	{
		reader.GET("/users/:id", m.Users.GetUser)
	}
}
