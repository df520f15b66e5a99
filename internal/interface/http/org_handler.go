package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrm-service/internal/application"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
	"github.com/oksasatya/go-hrm-service/internal/interface/middleware"
	"github.com/oksasatya/go-hrm-service/pkg/response"
	"github.com/oksasatya/go-hrm-service/pkg/validation"
)

type OrgHandler struct {
	Svc    *application.OrgService
	Logger *logrus.Logger
}

func NewOrgHandler(svc *application.OrgService, logger *logrus.Logger) *OrgHandler {
	return &OrgHandler{Svc: svc, Logger: logger}
}

type departmentRequest struct {
	DeptName    string `json:"dept_name" binding:"required"`
	Description string `json:"description"`
}

type subDepartmentRequest struct {
	DeptID      int32  `json:"dept_id" binding:"required,gt=0"`
	SubDeptName string `json:"sub_dept_name" binding:"required"`
	Description string `json:"description"`
}

type designationRequest struct {
	DesignationName string `json:"designation_name" binding:"required"`
	DeptID          *int32 `json:"dept_id"`
	SubDeptID       *int32 `json:"sub_dept_id"`
	Description     string `json:"description"`
}

type orgTreeRequest struct {
	DeptName        string `json:"dept_name" binding:"required"`
	DeptDescription string `json:"dept_description"`
	SubDeptName     string `json:"sub_dept_name" binding:"required"`
	SubDeptDesc     string `json:"sub_dept_description"`
	DesignationName string `json:"designation_name" binding:"required"`
	DesignationDesc string `json:"designation_description"`
}

func actorID(c *gin.Context) *int64 {
	id := middleware.UserIDFromCtx(c)
	if id == 0 {
		return nil
	}
	return &id
}

func parseID32(c *gin.Context, name string) (int32, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || n <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return int32(n), true
}

func query32(c *gin.Context, name string) *int32 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := int32(n)
	return &v
}

// CreateDepartment POST /api/org/departments
func (h *OrgHandler) CreateDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.CreateDepartment(c.Request.Context(), req.DeptName, req.Description, actorID(c))
	if err != nil {
		h.Logger.WithError(err).Error("create department failed")
		response.Error[any](c, http.StatusInternalServerError, "create department failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, d, "department saved", nil)
}

// CreateSubDepartment POST /api/org/sub-departments
func (h *OrgHandler) CreateSubDepartment(c *gin.Context) {
	var req subDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sd, err := h.Svc.CreateSubDepartment(c.Request.Context(), req.DeptID, req.SubDeptName, req.Description, actorID(c))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "department not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create sub-department failed")
		response.Error[any](c, http.StatusInternalServerError, "create sub-department failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, sd, "sub-department saved", nil)
}

// CreateDesignation POST /api/org/designations
func (h *OrgHandler) CreateDesignation(c *gin.Context) {
	var req designationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.CreateDesignation(c.Request.Context(), req.DesignationName, req.DeptID, req.SubDeptID, req.Description, actorID(c))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "department or sub-department not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create designation failed")
		response.Error[any](c, http.StatusInternalServerError, "create designation failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, d, "designation saved", nil)
}

// CreateTree POST /api/org/add-all
// Saves a department, sub-department and designation chain in one transaction.
func (h *OrgHandler) CreateTree(c *gin.Context) {
	var req orgTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tree, err := h.Svc.CreateTree(c.Request.Context(), repo.OrgTreeInput{
		DeptName:        req.DeptName,
		DeptDescription: req.DeptDescription,
		SubDeptName:     req.SubDeptName,
		SubDeptDesc:     req.SubDeptDesc,
		DesignationName: req.DesignationName,
		DesignationDesc: req.DesignationDesc,
		CreatedBy:       actorID(c),
	})
	if err != nil {
		h.Logger.WithError(err).Error("create org tree failed")
		response.Error[any](c, http.StatusInternalServerError, "create org tree failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, tree, "org tree saved", nil)
}

// GetDepartment GET /api/org/departments/:id
func (h *OrgHandler) GetDepartment(c *gin.Context) {
	id, ok := parseID32(c, "id")
	if !ok {
		return
	}
	d, err := h.Svc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "department not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get department failed")
		response.Error[any](c, http.StatusInternalServerError, "get department failed", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "department", nil)
}

// GetSubDepartment GET /api/org/sub-departments/:id
func (h *OrgHandler) GetSubDepartment(c *gin.Context) {
	id, ok := parseID32(c, "id")
	if !ok {
		return
	}
	sd, err := h.Svc.GetSubDepartment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "sub-department not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get sub-department failed")
		response.Error[any](c, http.StatusInternalServerError, "get sub-department failed", nil)
		return
	}
	response.Success(c, http.StatusOK, sd, "sub-department", nil)
}

// GetDesignation GET /api/org/designations/:id
func (h *OrgHandler) GetDesignation(c *gin.Context) {
	id, ok := parseID32(c, "id")
	if !ok {
		return
	}
	d, err := h.Svc.GetDesignation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "designation not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get designation failed")
		response.Error[any](c, http.StatusInternalServerError, "get designation failed", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "designation", nil)
}

// ListDepartments GET /api/org/departments
func (h *OrgHandler) ListDepartments(c *gin.Context) {
	rows, err := h.Svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list departments failed")
		response.Error[any](c, http.StatusInternalServerError, "list departments failed", nil)
		return
	}
	response.Success(c, http.StatusOK, rows, "departments", map[string]any{"count": len(rows)})
}

// ListSubDepartments GET /api/org/sub-departments?dept_id=
func (h *OrgHandler) ListSubDepartments(c *gin.Context) {
	rows, err := h.Svc.ListSubDepartments(c.Request.Context(), query32(c, "dept_id"))
	if err != nil {
		h.Logger.WithError(err).Error("list sub-departments failed")
		response.Error[any](c, http.StatusInternalServerError, "list sub-departments failed", nil)
		return
	}
	response.Success(c, http.StatusOK, rows, "sub-departments", map[string]any{"count": len(rows)})
}

// ListDesignations GET /api/org/designations?dept_id=&sub_dept_id=
func (h *OrgHandler) ListDesignations(c *gin.Context) {
	rows, err := h.Svc.ListDesignations(c.Request.Context(), query32(c, "dept_id"), query32(c, "sub_dept_id"))
	if err != nil {
		h.Logger.WithError(err).Error("list designations failed")
		response.Error[any](c, http.StatusInternalServerError, "list designations failed", nil)
		return
	}
	response.Success(c, http.StatusOK, rows, "designations", map[string]any{"count": len(rows)})
}
