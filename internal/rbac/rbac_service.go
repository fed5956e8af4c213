package rbac

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-workforce/internal/activitylog"
	"go-workforce/internal/notification"
	rbacerrors "go-workforce/internal/rbac/errors"
	"go-workforce/internal/rbac/infra"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	accessCacheTTL    = 5 * time.Minute
	accessGenKey      = "rbac:access:gen"
	accessKeyTemplate = "rbac:access:%d:%s"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// ResolveAccess mengembalikan snapshot akses untuk satu identity.
	// Error query di-degradasi menjadi akses kosong (bukan error) dan dicatat.
	ResolveAccess(ctx context.Context, userID string) (*Access, error)

	// Invalidate membuang snapshot cache satu user; InvalidateAll membuang semua.
	Invalidate(ctx context.Context, userID string) error
	InvalidateAll(ctx context.Context) error

	Enforce(ctx context.Context, userID, module, action string) (bool, error)

	ListRoles(ctx context.Context) ([]RoleResponse, error)
	CreateCustomRole(ctx context.Context, actorID string, req CreateRoleRequest) (RoleResponse, error)
	UpdateCustomRole(ctx context.Context, actorID, roleID string, req UpdateRoleRequest) (RoleResponse, error)
	DeleteCustomRole(ctx context.Context, actorID, roleID string) error

	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	ListRolePermissions(ctx context.Context, ref RoleRef) ([]PermissionResponse, error)
	UpdateRolePermissions(ctx context.Context, actorID string, ref RoleRef, permissionIDs []string) error

	AssignRole(ctx context.Context, actorID, userID string, ref RoleRef) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	cache    *redis.Client
	activity activitylog.Writer
	notifier notification.Service
	logger   *zap.Logger
	sf       singleflight.Group
}

func NewService(
	db *sql.DB,
	repo Repository,
	cache *redis.Client,
	activity activitylog.Writer,
	notifier notification.Service,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		db:       db,
		repo:     repo,
		cache:    cache,
		activity: activity,
		notifier: notifier,
		logger:   logger.Named("rbac"),
	}
}

// --- Resolution ---

func (s *service) ResolveAccess(ctx context.Context, userID string) (*Access, error) {
	if s.cache != nil {
		if cached := s.readCache(ctx, userID); cached != nil {
			return cached, nil
		}
	}

	// singleflight: request paralel untuk user yang sama cukup satu resolve.
	v, err, _ := s.sf.Do(userID, func() (interface{}, error) {
		access := s.resolveUncached(ctx, userID)
		if s.cache != nil {
			s.writeCache(ctx, access)
		}
		return access, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Access), nil
}

func (s *service) resolveUncached(ctx context.Context, userID string) *Access {
	l := contextutil.GetLogger(ctx, s.logger)
	access := &Access{UserID: userID, ResolvedAt: time.Now().UTC()}

	rows, err := s.repo.ListAssignments(ctx, userID)
	if err != nil {
		// Role kosong dan query gagal sengaja tidak dibedakan untuk caller.
		l.Error("role assignments fetch failed", zap.Error(err), zap.String("user_id", userID))
		return access
	}
	if len(rows) == 0 {
		return access
	}

	refs := make([]RoleRef, 0, len(rows))
	for _, row := range rows {
		ref := row.Ref()
		if ref.Kind == "" {
			continue
		}
		refs = append(refs, ref)
	}

	access.Roles = s.resolveLabels(ctx, refs)

	for _, ref := range refs {
		if ref.Kind == RoleKindSystem && ref.System == RoleSuperAdmin {
			// super_admin: blanket access, tanpa query tabel permission.
			access.AllowAll = true
			return access
		}
	}

	perms, err := s.flattenPermissions(ctx, userID, refs)
	if err != nil {
		l.Error("permission resolution failed", zap.Error(err), zap.String("user_id", userID))
		return access
	}
	access.Permissions = perms

	return access
}

// resolveLabels mengubah refs menjadi label tampilan dan menerapkan aturan
// suppression: identity yang sudah elevated tidak dilaporkan sebagai employee.
func (s *service) resolveLabels(ctx context.Context, refs []RoleRef) []ResolvedRole {
	l := contextutil.GetLogger(ctx, s.logger)

	roles := make([]ResolvedRole, 0, len(refs))
	elevated := false

	for _, ref := range refs {
		switch ref.Kind {
		case RoleKindSystem:
			roles = append(roles, ResolvedRole{Kind: RoleKindSystem, Label: string(ref.System)})
			if elevatedRoles[ref.System] {
				elevated = true
			}
		case RoleKindCustom:
			role, err := s.repo.FindCustomRoleByID(ctx, ref.CustomID.String())
			if err != nil {
				l.Warn("custom role lookup failed", zap.Error(err), zap.String("role_id", ref.CustomID.String()))
				continue
			}
			roles = append(roles, ResolvedRole{
				Kind:     RoleKindCustom,
				Label:    role.Name,
				CustomID: role.ID.String(),
			})
			elevated = true
		}
	}

	if !elevated {
		return roles
	}

	out := roles[:0]
	for _, r := range roles {
		if r.Kind == RoleKindSystem && r.Label == string(RoleEmployee) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// flattenPermissions memuat grant rows ke enforcer Casbin lalu mengambil
// permission implisit user sebagai set {module, action} yang sudah flat.
func (s *service) flattenPermissions(ctx context.Context, userID string, refs []RoleRef) ([]PermissionPair, error) {
	grants, err := s.repo.ListGrantsForRoles(ctx, refs)
	if err != nil {
		return nil, err
	}

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}

	subject := "user:" + userID
	for _, ref := range refs {
		if _, err := enforcer.AddGroupingPolicy(subject, ref.Key()); err != nil {
			return nil, err
		}
	}
	for _, g := range grants {
		key := grantRoleKey(g)
		if key == "" {
			continue
		}
		if _, err := enforcer.AddPolicy(key, g.Module, g.Action); err != nil {
			return nil, err
		}
	}

	implicit, err := enforcer.GetImplicitPermissionsForUser(subject)
	if err != nil {
		return nil, err
	}

	seen := make(map[PermissionPair]struct{}, len(implicit))
	pairs := make([]PermissionPair, 0, len(implicit))
	for _, p := range implicit {
		if len(p) < 3 {
			continue
		}
		pair := PermissionPair{Module: p[1], Action: p[2]}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

func grantRoleKey(g GrantRow) string {
	if g.RoleKind == RoleKindSystem && g.SystemRole != nil {
		return SystemRoleRef(*g.SystemRole).Key()
	}
	if g.CustomRoleID != nil {
		return CustomRoleRef(*g.CustomRoleID).Key()
	}
	return ""
}

func (s *service) Enforce(ctx context.Context, userID, module, action string) (bool, error) {
	access, err := s.ResolveAccess(ctx, userID)
	if err != nil {
		return false, err
	}
	return access.HasPermission(module, action), nil
}

// --- Cache ---

func (s *service) generation(ctx context.Context) int64 {
	gen, err := s.cache.Get(ctx, accessGenKey).Int64()
	if err != nil {
		return 0
	}
	return gen
}

func (s *service) readCache(ctx context.Context, userID string) *Access {
	key := fmt.Sprintf(accessKeyTemplate, s.generation(ctx), userID)
	var access Access
	if err := s.cache.Get(ctx, key).Scan(&access); err != nil {
		return nil
	}
	return &access
}

func (s *service) writeCache(ctx context.Context, access *Access) {
	key := fmt.Sprintf(accessKeyTemplate, s.generation(ctx), access.UserID)
	if err := s.cache.Set(ctx, key, access, accessCacheTTL).Err(); err != nil {
		s.logger.Warn("access cache write failed", zap.Error(err))
	}
}

func (s *service) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	key := fmt.Sprintf(accessKeyTemplate, s.generation(ctx), userID)
	return s.cache.Del(ctx, key).Err()
}

// InvalidateAll menaikkan generation; semua key lama kadaluarsa lewat TTL.
func (s *service) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Incr(ctx, accessGenKey).Err()
}

// --- Role management ---

func (s *service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	custom, err := s.repo.ListCustomRoles(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RoleResponse, 0, len(SystemRoles)+len(custom))
	for _, r := range SystemRoles {
		resp = append(resp, RoleResponse{
			Kind:        RoleKindSystem,
			Name:        string(r),
			Description: systemRoleDescriptions[r],
			Deletable:   false,
		})
	}
	for _, r := range custom {
		resp = append(resp, mapRoleResponse(r))
	}
	return resp, nil
}

func (s *service) CreateCustomRole(ctx context.Context, actorID string, req CreateRoleRequest) (RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if _, isSystem := ParseSystemRole(name); isSystem {
		return RoleResponse{}, rbacerrors.ErrRoleNameTaken
	}

	if _, err := s.repo.FindCustomRoleByName(ctx, name); err == nil {
		return RoleResponse{}, rbacerrors.ErrRoleNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RoleResponse{}, err
	}

	role := &CustomRole{
		ID:               uuid.New(),
		Name:             name,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Rules:            req.Rules,
		IsActive:         true,
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		role.CreatedBy = actor
	}

	if err := s.repo.CreateCustomRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}

	s.audit(ctx, actorID, activitylog.Entry{
		ActionType:  activitylog.ActionRoleCreated,
		Description: "Custom role created",
		Module:      "roles",
		Target:      role.Name,
	})

	return mapRoleResponse(*role), nil
}

func (s *service) UpdateCustomRole(ctx context.Context, actorID, roleID string, req UpdateRoleRequest) (RoleResponse, error) {
	if _, isSystem := ParseSystemRole(roleID); isSystem {
		return RoleResponse{}, rbacerrors.ErrSystemRoleImmutable
	}

	role, err := s.repo.FindCustomRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if _, isSystem := ParseSystemRole(name); isSystem {
			return RoleResponse{}, rbacerrors.ErrRoleNameTaken
		}
		if existing, err := s.repo.FindCustomRoleByName(ctx, name); err == nil && existing.ID != role.ID {
			return RoleResponse{}, rbacerrors.ErrRoleNameTaken
		}
		role.Name = name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Responsibilities != nil {
		role.Responsibilities = *req.Responsibilities
	}
	if req.Rules != nil {
		role.Rules = *req.Rules
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateCustomRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}

	// Nama role tampil di snapshot akses; buang semua cache.
	if err := s.InvalidateAll(ctx); err != nil {
		s.logger.Warn("access invalidation failed", zap.Error(err))
	}

	s.audit(ctx, actorID, activitylog.Entry{
		ActionType:  activitylog.ActionRoleUpdated,
		Description: "Custom role updated",
		Module:      "roles",
		Target:      role.Name,
	})

	return mapRoleResponse(*role), nil
}

func (s *service) DeleteCustomRole(ctx context.Context, actorID, roleID string) error {
	// "admin" dkk bukan row custom; jangan laporkan not-found untuk role
	// yang memang ada tapi tidak boleh dihapus.
	if _, isSystem := ParseSystemRole(roleID); isSystem {
		return rbacerrors.ErrSystemRoleImmutable
	}

	role, err := s.repo.FindCustomRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}

	assigned, err := s.repo.CountAssignmentsByCustomRole(ctx, roleID)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return rbacerrors.ErrRoleInUse
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceRolePermissions(ctx, CustomRoleRef(role.ID), nil); err != nil {
		return err
	}
	if err := qtx.DeleteCustomRole(ctx, roleID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := s.InvalidateAll(ctx); err != nil {
		s.logger.Warn("access invalidation failed", zap.Error(err))
	}

	s.audit(ctx, actorID, activitylog.Entry{
		ActionType:  activitylog.ActionRoleDeleted,
		Description: "Custom role deleted",
		Module:      "roles",
		Target:      role.Name,
	})

	return nil
}

// --- Permissions ---

func (s *service) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	return mapPermissionResponses(perms), nil
}

func (s *service) ListRolePermissions(ctx context.Context, ref RoleRef) ([]PermissionResponse, error) {
	if ref.Kind == RoleKindCustom {
		if _, err := s.repo.FindCustomRoleByID(ctx, ref.CustomID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, rbacerrors.ErrRoleNotFound
			}
			return nil, err
		}
	}

	perms, err := s.repo.ListPermissionsByRole(ctx, ref)
	if err != nil {
		return nil, err
	}
	return mapPermissionResponses(perms), nil
}

func (s *service) UpdateRolePermissions(ctx context.Context, actorID string, ref RoleRef, permissionIDs []string) error {
	target := ref.Key()
	if ref.Kind == RoleKindCustom {
		role, err := s.repo.FindCustomRoleByID(ctx, ref.CustomID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rbacerrors.ErrRoleNotFound
			}
			return err
		}
		target = role.Name
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ReplaceRolePermissions(ctx, ref, permissionIDs); err != nil {
		// FK violation berarti ada permission id yang tidak dikenal.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return rbacerrors.ErrPermissionNotFound
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	// Matrix berubah untuk semua pemegang role; satu user tidak cukup.
	if err := s.InvalidateAll(ctx); err != nil {
		s.logger.Warn("access invalidation failed", zap.Error(err))
	}

	s.audit(ctx, actorID, activitylog.Entry{
		ActionType:  activitylog.ActionPermissionsUpdated,
		Description: "Role permission matrix updated",
		Module:      "roles",
		Target:      target,
		Metadata:    map[string]any{"permission_count": len(permissionIDs)},
	})

	return nil
}

// --- Assignment ---

func (s *service) AssignRole(ctx context.Context, actorID, userID string, ref RoleRef) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return rbacerrors.ErrInvalidRoleRef
	}

	label := string(ref.System)
	if ref.Kind == RoleKindCustom {
		role, err := s.repo.FindCustomRoleByID(ctx, ref.CustomID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rbacerrors.ErrRoleNotFound
			}
			return err
		}
		if !role.IsActive {
			return rbacerrors.ErrRoleNotFound
		}
		label = role.Name
	}

	var assignedBy uuid.UUID
	if actor, err := uuid.Parse(actorID); err == nil {
		assignedBy = actor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ReplaceAssignment(ctx, NewUserRole(uid, ref, assignedBy)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := s.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("access invalidation failed", zap.Error(err))
	}

	s.audit(ctx, actorID, activitylog.Entry{
		UserID:      userID,
		ActionType:  activitylog.ActionRoleAssigned,
		Description: "Role assignment changed",
		Module:      "roles",
		Target:      label,
	})

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, notification.TypeRoleChanged,
			"Your role has changed",
			fmt.Sprintf("Your role is now %q.", label),
		)
	}

	return nil
}

func (s *service) audit(ctx context.Context, actorID string, entry activitylog.Entry) {
	if s.activity == nil {
		return
	}
	entry.PerformedBy = actorID
	if entry.Status == "" {
		entry.Status = activitylog.StatusSuccess
	}
	s.activity.Log(ctx, entry)
}

func mapRoleResponse(r CustomRole) RoleResponse {
	return RoleResponse{
		Kind:             RoleKindCustom,
		ID:               r.ID.String(),
		Name:             r.Name,
		Description:      r.Description,
		Responsibilities: r.Responsibilities,
		Rules:            r.Rules,
		IsActive:         r.IsActive,
		Deletable:        true,
		CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapPermissionResponses(perms []Permission) []PermissionResponse {
	resp := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		resp = append(resp, PermissionResponse{
			ID:          p.ID.String(),
			Module:      p.Module,
			Action:      p.Action,
			Description: p.Description,
		})
	}
	return resp
}
