package rbac

import (
	"github.com/google/uuid"

	rbacerrors "go-workforce/internal/rbac/errors"
)

type RoleRefPayload struct {
	Kind     string `json:"kind" binding:"required,oneof=system custom"`
	Role     string `json:"role,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
}

// ToRef memvalidasi payload menjadi RoleRef bertipe.
func (p RoleRefPayload) ToRef() (RoleRef, error) {
	switch RoleKind(p.Kind) {
	case RoleKindSystem:
		role, ok := ParseSystemRole(p.Role)
		if !ok {
			return RoleRef{}, rbacerrors.ErrInvalidRoleRef
		}
		return SystemRoleRef(role), nil
	case RoleKindCustom:
		id, err := uuid.Parse(p.CustomID)
		if err != nil {
			return RoleRef{}, rbacerrors.ErrInvalidRoleRef
		}
		return CustomRoleRef(id), nil
	}
	return RoleRef{}, rbacerrors.ErrInvalidRoleRef
}

type CreateRoleRequest struct {
	Name             string `json:"name" binding:"required,min=3,max=100"`
	Description      string `json:"description"`
	Responsibilities string `json:"responsibilities"`
	Rules            string `json:"rules"`
}

type UpdateRoleRequest struct {
	Name             *string `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Description      *string `json:"description,omitempty"`
	Responsibilities *string `json:"responsibilities,omitempty"`
	Rules            *string `json:"rules,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

type RoleResponse struct {
	Kind             RoleKind `json:"kind"`
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	Rules            string   `json:"rules,omitempty"`
	IsActive         bool     `json:"is_active,omitempty"`
	Deletable        bool     `json:"deletable"`
	CreatedAt        string   `json:"created_at,omitempty"`
}

type PermissionResponse struct {
	ID          string `json:"id"`
	Module      string `json:"module"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required"`
}

type AssignRoleRequest struct {
	UserID string         `json:"user_id" binding:"required,uuid"`
	Role   RoleRefPayload `json:"role" binding:"required"`
}

type EnforceRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Module string `json:"module" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type AccessResponse struct {
	UserID      string           `json:"user_id"`
	Roles       []ResolvedRole   `json:"roles"`
	Permissions []PermissionPair `json:"permissions"`
	IsAdmin     bool             `json:"is_admin"`
	AllowAll    bool             `json:"allow_all"`
}
