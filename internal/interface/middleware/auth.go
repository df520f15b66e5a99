package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hrm-service/internal/application"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
	"github.com/oksasatya/go-hrm-service/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRolesKey  = "userRoles"
)

// Auth validates the bearer access token and loads the caller's identity.
// It rejects missing/malformed/expired tokens and missing or deactivated
// accounts, and sets userID plus the user's current role set in the Gin
// context. Roles come from the database, not the token, so revocations take
// effect without waiting for token expiry.
func Auth(jwt *helpers.JWTManager, users repo.UserRepository, roles repo.RoleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired access token", nil)
			c.Abort()
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired access token", nil)
			c.Abort()
			return
		}

		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || !u.IsActive {
			response.Error[any](c, http.StatusUnauthorized, "user not found or inactive", nil)
			c.Abort()
			return
		}
		current, err := roles.NamesForUser(c.Request.Context(), u.ID)
		if err != nil {
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxRolesKey, current)
		c.Next()
	}
}

// RequireRoles passes requests whose caller holds at least one of the
// allowed roles. Allowed names are normalized once at construction.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range application.NormalizeRoles(allowed) {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		for _, r := range RolesFromCtx(c) {
			if _, ok := allowedSet[r]; ok {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		c.Abort()
	}
}

// UserIDFromCtx returns the authenticated caller's id, zero when absent.
func UserIDFromCtx(c *gin.Context) int64 {
	if v, ok := c.Get(CtxUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// RolesFromCtx returns the caller's current role set.
func RolesFromCtx(c *gin.Context) []string {
	if v, ok := c.Get(CtxRolesKey); ok {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}
