package rbac

import (
	"time"

	"github.com/google/uuid"
)

type SystemRole string

const (
	RoleSuperAdmin SystemRole = "super_admin"
	RoleAdmin      SystemRole = "admin"
	RoleHR         SystemRole = "hr"
	RoleManager    SystemRole = "manager"
	RoleEmployee   SystemRole = "employee"
)

// SystemRoles adalah daftar tertutup; role baru dibuat sebagai CustomRole.
var SystemRoles = []SystemRole{RoleSuperAdmin, RoleAdmin, RoleHR, RoleManager, RoleEmployee}

var systemRoleDescriptions = map[SystemRole]string{
	RoleSuperAdmin: "Full access to every module and action",
	RoleAdmin:      "Administrative access to user and role management",
	RoleHR:         "Human resources operations",
	RoleManager:    "Team management and approvals",
	RoleEmployee:   "Default role for every verified account",
}

func ParseSystemRole(s string) (SystemRole, bool) {
	for _, r := range SystemRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// elevatedRoles menyembunyikan role employee default saat resolusi.
var elevatedRoles = map[SystemRole]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleHR:         true,
	RoleManager:    true,
}

type RoleKind string

const (
	RoleKindSystem RoleKind = "system"
	RoleKindCustom RoleKind = "custom"
)

// RoleRef adalah tagged variant: role sistem (enum) ATAU custom role (id).
// Menggantikan representasi string "custom_<id>" agar tidak ada parsing prefix.
type RoleRef struct {
	Kind     RoleKind
	System   SystemRole
	CustomID uuid.UUID
}

func SystemRoleRef(r SystemRole) RoleRef {
	return RoleRef{Kind: RoleKindSystem, System: r}
}

func CustomRoleRef(id uuid.UUID) RoleRef {
	return RoleRef{Kind: RoleKindCustom, CustomID: id}
}

func (r RoleRef) IsSystem() bool { return r.Kind == RoleKindSystem }

// Key menghasilkan subject key untuk policy Casbin.
func (r RoleRef) Key() string {
	if r.Kind == RoleKindSystem {
		return "system:" + string(r.System)
	}
	return "custom:" + r.CustomID.String()
}

// --- Persisted rows ---

type CustomRole struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	Description      string    `gorm:"column:description;type:text"`
	Responsibilities string    `gorm:"column:responsibilities;type:text"`
	Rules            string    `gorm:"column:rules;type:text"`
	IsActive         bool      `gorm:"column:is_active;default:true"`
	CreatedBy        uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomRole) TableName() string { return "custom_roles" }

type Permission struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Module      string    `gorm:"column:module;type:varchar(100);not null;uniqueIndex:idx_permissions_module_action"`
	Action      string    `gorm:"column:action;type:varchar(100);not null;uniqueIndex:idx_permissions_module_action"`
	Description string    `gorm:"column:description;type:text"`
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RoleKind     RoleKind    `gorm:"column:role_kind;type:varchar(10);not null"`
	SystemRole   *SystemRole `gorm:"column:system_role;type:varchar(50)"`
	CustomRoleID *uuid.UUID  `gorm:"column:custom_role_id;type:uuid"`
	PermissionID uuid.UUID   `gorm:"column:permission_id;type:uuid;not null"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// UserRole mengikat satu identity ke tepat satu role.
// user_id unik: satu assignment per identity, ditegakkan di level schema.
type UserRole struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID   `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	RoleKind     RoleKind    `gorm:"column:role_kind;type:varchar(10);not null"`
	SystemRole   *SystemRole `gorm:"column:system_role;type:varchar(50)"`
	CustomRoleID *uuid.UUID  `gorm:"column:custom_role_id;type:uuid"`
	AssignedBy   uuid.UUID   `gorm:"column:assigned_by;type:uuid"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (UserRole) TableName() string { return "user_roles" }

// Ref mengubah kolom kind/system/custom menjadi RoleRef.
func (ur UserRole) Ref() RoleRef {
	if ur.RoleKind == RoleKindSystem && ur.SystemRole != nil {
		return SystemRoleRef(*ur.SystemRole)
	}
	if ur.CustomRoleID != nil {
		return CustomRoleRef(*ur.CustomRoleID)
	}
	return RoleRef{}
}

// NewUserRole membuat row assignment dari sebuah RoleRef.
func NewUserRole(userID uuid.UUID, ref RoleRef, assignedBy uuid.UUID) *UserRole {
	ur := &UserRole{
		ID:         uuid.New(),
		UserID:     userID,
		RoleKind:   ref.Kind,
		AssignedBy: assignedBy,
	}
	if ref.Kind == RoleKindSystem {
		r := ref.System
		ur.SystemRole = &r
	} else {
		id := ref.CustomID
		ur.CustomRoleID = &id
	}
	return ur
}
