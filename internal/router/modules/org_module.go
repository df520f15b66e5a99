package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hrm-service/internal/container"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	handlers "github.com/oksasatya/go-hrm-service/internal/interface/http"
	"github.com/oksasatya/go-hrm-service/internal/interface/middleware"
)

// OrgModule wires the organizational directory routes. Reads are open to any
// authenticated user; writes require the user-management role set.
type OrgModule struct {
	Handler  *handlers.OrgHandler
	UserRepo repo.UserRepository
	RoleRepo repo.RoleRepository
}

func NewOrgModule(h *handlers.OrgHandler, users repo.UserRepository, roles repo.RoleRepository) *OrgModule {
	return &OrgModule{Handler: h, UserRepo: users, RoleRepo: roles}
}

func (m *OrgModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	org := rg.Group("/org")
	org.Use(middleware.Auth(container.GetJWT(), m.UserRepo, m.RoleRepo))
	org.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		org.GET("/departments", m.Handler.ListDepartments)
		org.GET("/departments/:id", m.Handler.GetDepartment)
		org.GET("/sub-departments", m.Handler.ListSubDepartments)
		org.GET("/sub-departments/:id", m.Handler.GetSubDepartment)
		org.GET("/designations", m.Handler.ListDesignations)
		org.GET("/designations/:id", m.Handler.GetDesignation)
	}

	writer := org.Group("/")
	writer.Use(middleware.RequireRoles(cfg.UsersEndpointAllowed()...))
	{
		writer.POST("/departments", m.Handler.CreateDepartment)
		writer.POST("/sub-departments", m.Handler.CreateSubDepartment)
		writer.POST("/designations", m.Handler.CreateDesignation)
		writer.POST("/add-all", m.Handler.CreateTree)
	}
}
