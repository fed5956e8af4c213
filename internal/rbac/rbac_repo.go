package rbac

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GrantRow adalah hasil join role_permissions -> permissions.
type GrantRow struct {
	RoleKind     RoleKind
	SystemRole   *SystemRole
	CustomRoleID *uuid.UUID
	Module       string
	Action       string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Assignments
	ListAssignments(ctx context.Context, userID string) ([]UserRole, error)
	ReplaceAssignment(ctx context.Context, row *UserRole) error
	DeleteAssignment(ctx context.Context, userID string) error
	CountAssignmentsByCustomRole(ctx context.Context, customRoleID string) (int64, error)

	// Custom roles
	ListCustomRoles(ctx context.Context) ([]CustomRole, error)
	FindCustomRoleByID(ctx context.Context, id string) (*CustomRole, error)
	FindCustomRoleByName(ctx context.Context, name string) (*CustomRole, error)
	CreateCustomRole(ctx context.Context, role *CustomRole) error
	UpdateCustomRole(ctx context.Context, role *CustomRole) error
	DeleteCustomRole(ctx context.Context, id string) error

	// Permission catalog & grants
	ListPermissions(ctx context.Context) ([]Permission, error)
	ListGrantsForRoles(ctx context.Context, refs []RoleRef) ([]GrantRow, error)
	ListPermissionsByRole(ctx context.Context, ref RoleRef) ([]Permission, error)
	ReplaceRolePermissions(ctx context.Context, ref RoleRef, permissionIDs []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat repository ke transaksi database/sql yang sedang berjalan.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) ListAssignments(ctx context.Context, userID string) ([]UserRole, error) {
	var rows []UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAssignmentsByCustomRole(ctx context.Context, customRoleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserRole{}).
		Where("role_kind = ? AND custom_role_id = ?", RoleKindCustom, customRoleID).
		Count(&count).Error
	return count, err
}

// ReplaceAssignment: delete-then-insert. Dipanggil di dalam transaksi;
// unique index pada user_id menolak duplikat dari request yang balapan.
func (r *repository) ReplaceAssignment(ctx context.Context, row *UserRole) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", row.UserID).
		Delete(&UserRole{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) DeleteAssignment(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&UserRole{}).Error
}

func (r *repository) ListCustomRoles(ctx context.Context) ([]CustomRole, error) {
	var roles []CustomRole
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) FindCustomRoleByID(ctx context.Context, id string) (*CustomRole, error) {
	var role CustomRole
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindCustomRoleByName(ctx context.Context, name string) (*CustomRole, error) {
	var role CustomRole
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) CreateCustomRole(ctx context.Context, role *CustomRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateCustomRole(ctx context.Context, role *CustomRole) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *repository) DeleteCustomRole(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&CustomRole{}, "id = ?", id).Error
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Order("module ASC, action ASC").
		Find(&perms).Error
	return perms, err
}

func (r *repository) ListGrantsForRoles(ctx context.Context, refs []RoleRef) ([]GrantRow, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	systemRoles := make([]string, 0, len(refs))
	customIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind == RoleKindSystem {
			systemRoles = append(systemRoles, string(ref.System))
		} else {
			customIDs = append(customIDs, ref.CustomID.String())
		}
	}

	q := r.db.WithContext(ctx).
		Table("role_permissions rp").
		Select("rp.role_kind, rp.system_role, rp.custom_role_id, p.module, p.action").
		Joins("JOIN permissions p ON p.id = rp.permission_id")

	switch {
	case len(systemRoles) > 0 && len(customIDs) > 0:
		q = q.Where(
			"(rp.role_kind = ? AND rp.system_role IN ?) OR (rp.role_kind = ? AND rp.custom_role_id IN ?)",
			RoleKindSystem, systemRoles, RoleKindCustom, customIDs,
		)
	case len(systemRoles) > 0:
		q = q.Where("rp.role_kind = ? AND rp.system_role IN ?", RoleKindSystem, systemRoles)
	default:
		q = q.Where("rp.role_kind = ? AND rp.custom_role_id IN ?", RoleKindCustom, customIDs)
	}

	var rows []GrantRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) ListPermissionsByRole(ctx context.Context, ref RoleRef) ([]Permission, error) {
	q := r.db.WithContext(ctx).
		Table("permissions p").
		Select("p.id, p.module, p.action, p.description").
		Joins("JOIN role_permissions rp ON rp.permission_id = p.id")

	if ref.Kind == RoleKindSystem {
		q = q.Where("rp.role_kind = ? AND rp.system_role = ?", RoleKindSystem, string(ref.System))
	} else {
		q = q.Where("rp.role_kind = ? AND rp.custom_role_id = ?", RoleKindCustom, ref.CustomID.String())
	}

	var perms []Permission
	err := q.Order("p.module ASC, p.action ASC").Scan(&perms).Error
	return perms, err
}

// ReplaceRolePermissions menulis ulang matrix permission sebuah role.
func (r *repository) ReplaceRolePermissions(ctx context.Context, ref RoleRef, permissionIDs []string) error {
	del := r.db.WithContext(ctx)
	if ref.Kind == RoleKindSystem {
		del = del.Where("role_kind = ? AND system_role = ?", RoleKindSystem, string(ref.System))
	} else {
		del = del.Where("role_kind = ? AND custom_role_id = ?", RoleKindCustom, ref.CustomID.String())
	}
	if err := del.Delete(&RolePermission{}).Error; err != nil {
		return err
	}

	if len(permissionIDs) == 0 {
		return nil
	}

	rows := make([]RolePermission, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		permID, err := uuid.Parse(pid)
		if err != nil {
			return err
		}
		row := RolePermission{
			ID:           uuid.New(),
			RoleKind:     ref.Kind,
			PermissionID: permID,
		}
		if ref.Kind == RoleKindSystem {
			sr := ref.System
			row.SystemRole = &sr
		} else {
			cid := ref.CustomID
			row.CustomRoleID = &cid
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}
