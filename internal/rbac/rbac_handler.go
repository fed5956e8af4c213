package rbac

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Me mengembalikan snapshot akses identity yang sedang login.
// Frontend memakai ini untuk gating UI; enforcement tetap di middleware.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
		return
	}

	access, err := h.service.ResolveAccess(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AccessResponse{
		UserID:      access.UserID,
		Roles:       access.Roles,
		Permissions: access.Permissions,
		IsAdmin:     access.IsAdmin(),
		AllowAll:    access.AllowAll,
	}, nil)
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		response.FromError(c, mapped)
		return
	}

	allowed, err := h.service.Enforce(c.Request.Context(), req.UserID, req.Module, req.Action)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles, nil)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	role, err := h.service.CreateCustomRole(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, role, nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	role, err := h.service.UpdateCustomRole(c.Request.Context(), c.GetString("user_id"), c.Param("role"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, role, nil)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.service.DeleteCustomRole(c.Request.Context(), c.GetString("user_id"), c.Param("role")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.service.ListPermissions(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) ListRolePermissions(c *gin.Context) {
	ref, ok := h.roleRefFromPath(c)
	if !ok {
		return
	}

	perms, err := h.service.ListRolePermissions(c.Request.Context(), ref)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) UpdateRolePermissions(c *gin.Context) {
	ref, ok := h.roleRefFromPath(c)
	if !ok {
		return
	}

	var req UpdateRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.UpdateRolePermissions(c.Request.Context(), c.GetString("user_id"), ref, req.PermissionIDs); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}

func (h *Handler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	ref, err := req.Role.ToRef()
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), c.GetString("user_id"), req.UserID, ref); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assigned": true}, nil)
}

// roleRefFromPath membaca :role dari path: nama system role atau uuid custom role.
func (h *Handler) roleRefFromPath(c *gin.Context) (RoleRef, bool) {
	raw := c.Param("role")

	if role, ok := ParseSystemRole(raw); ok {
		return SystemRoleRef(role), true
	}
	if id, err := uuid.Parse(raw); err == nil {
		return CustomRoleRef(id), true
	}

	response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
		"Role must be a system role name or a custom role id", nil)
	return RoleRef{}, false
}
