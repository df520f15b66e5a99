package router

import (
	"github.com/oksasatya/go-hrm-service/internal/application"
	"github.com/oksasatya/go-hrm-service/internal/container"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	pginfra "github.com/oksasatya/go-hrm-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-hrm-service/internal/interface/http"
	"github.com/oksasatya/go-hrm-service/internal/router/modules"
)

type AuthModuleDeps struct {
	Users       repo.UserRepository
	Roles       repo.RoleRepository
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
}

func buildAuthDeps() AuthModuleDeps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	roles := pginfra.NewRoleRepository(pool)
	tokens := pginfra.NewRefreshTokenRepository(pool)
	employees := pginfra.NewEmployeeRepository(pool)
	resolver := &application.RoleResolver{Roles: roles, DefaultRole: cfg.DefaultRole}

	authSvc := application.NewAuthService(
		users,
		roles,
		tokens,
		employees,
		resolver,
		container.GetJWT(),
		cfg.RefreshTTL,
		logger,
	)
	adminSvc := application.NewUserAdminService(
		users,
		roles,
		employees,
		resolver,
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
	)

	return AuthModuleDeps{
		Users:       users,
		Roles:       roles,
		AuthHandler: handlers.NewAuthHandler(authSvc, logger),
		UserHandler: handlers.NewUserHandler(adminSvc, logger),
	}
}

func buildOrgHandler() *handlers.OrgHandler {
	org := pginfra.NewOrgRepository(container.GetPGPool())
	svc := application.NewOrgService(org, container.GetLogger())
	return handlers.NewOrgHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildAuthDeps()
	r.Add(modules.NewAuthModule(deps.AuthHandler, deps.UserHandler, deps.Users, deps.Roles))
	r.Add(modules.NewOrgModule(buildOrgHandler(), deps.Users, deps.Roles))
}
