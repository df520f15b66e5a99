package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrm-service/internal/application"
	"github.com/oksasatya/go-hrm-service/pkg/response"
	"github.com/oksasatya/go-hrm-service/pkg/validation"
)

const dateLayout = "2006-01-02"

type UserHandler struct {
	Svc    *application.UserAdminService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserAdminService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name" binding:"required"`
	Password     string `json:"password" binding:"required,pwd"`
	ProfilePhoto string `json:"profile_photo"`
	Role         string `json:"role"`
	EmployeeID   string `json:"employee_id" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	FathersName  string `json:"fathers_name"`
	AadharNo     string `json:"aadhar_no" binding:"required"`
	DateOfBirth  string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	WorkPosition string `json:"work_position" binding:"required"`
}

type patchUserRequest struct {
	FullName     *string `json:"full_name"`
	ProfilePhoto *string `json:"profile_photo"`
	IsActive     *bool   `json:"is_active"`
}

type assignRolesRequest struct {
	UserID int64    `json:"user_id" binding:"required"`
	Roles  []string `json:"roles" binding:"required,min=1"`
}

// CreateUser POST /api/auth/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid date_of_birth", nil)
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
		ProfilePhoto: req.ProfilePhoto,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
		Phone:        req.Phone,
		Address:      req.Address,
		FathersName:  req.FathersName,
		AadharNo:     req.AadharNo,
		DateOfBirth:  dob,
		WorkPosition: req.WorkPosition,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, "email already exists", nil)
		case errors.Is(err, application.ErrEmployeeConflict):
			response.Error[any](c, http.StatusConflict, "employee id or aadhar already exists", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error[any](c, http.StatusBadRequest, "unknown role", nil)
		default:
			h.Logger.WithError(err).Error("create user failed")
			response.Error[any](c, http.StatusInternalServerError, "create user failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

// ListUsers GET /api/auth/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), c.Query("q"), c.Query("employee_id"))
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "list users failed", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
}

// GetUser GET /api/auth/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Error[any](c, http.StatusInternalServerError, "get user failed", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

// PatchUser PATCH /api/auth/users/:id
func (h *UserHandler) PatchUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req patchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.PatchUser(c.Request.Context(), id, application.PatchUserInput{
		FullName:     req.FullName,
		ProfilePhoto: req.ProfilePhoto,
		IsActive:     req.IsActive,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("patch user failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// AssignRoles POST /api/auth/assign-roles
func (h *UserHandler) AssignRoles(c *gin.Context) {
	var req assignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.AssignRoles(c.Request.Context(), req.UserID, req.Roles)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error[any](c, http.StatusBadRequest, "unknown role", nil)
		default:
			h.Logger.WithError(err).Error("assign roles failed")
			response.Error[any](c, http.StatusInternalServerError, "assign roles failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, u, "roles assigned", nil)
}

// SearchUsers GET /api/auth/users/search
func (h *UserHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 20
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			size = n
		}
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
