package rbac_test

import (
	"context"
	"errors"
	"testing"

	"go-workforce/internal/rbac"
	rbacerrors "go-workforce/internal/rbac/errors"
	mock_rbac "go-workforce/internal/rbac/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func systemAssignment(userID uuid.UUID, role rbac.SystemRole) rbac.UserRole {
	r := role
	return rbac.UserRole{
		ID:         uuid.New(),
		UserID:     userID,
		RoleKind:   rbac.RoleKindSystem,
		SystemRole: &r,
	}
}

func customAssignment(userID, roleID uuid.UUID) rbac.UserRole {
	id := roleID
	return rbac.UserRole{
		ID:           uuid.New(),
		UserID:       userID,
		RoleKind:     rbac.RoleKindCustom,
		CustomRoleID: &id,
	}
}

func TestService_ResolveAccess_SuperAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	// super_admin: tidak boleh ada lookup tabel permission sama sekali.
	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return([]rbac.UserRole{systemAssignment(userID, rbac.RoleSuperAdmin)}, nil)

	access, err := svc.ResolveAccess(context.Background(), userID.String())

	assert.NoError(t, err)
	assert.True(t, access.AllowAll)
	assert.True(t, access.HasPermission("users", "delete"))
	assert.True(t, access.HasPermission("anything", "at_all"))
	assert.True(t, access.IsAdmin())
}

func TestService_ResolveAccess_EmployeeSuppression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	adminRole := rbac.RoleAdmin
	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return([]rbac.UserRole{
			systemAssignment(userID, rbac.RoleAdmin),
			systemAssignment(userID, rbac.RoleEmployee),
		}, nil)
	mockRepo.EXPECT().
		ListGrantsForRoles(gomock.Any(), gomock.Any()).
		Return([]rbac.GrantRow{
			{RoleKind: rbac.RoleKindSystem, SystemRole: &adminRole, Module: "users", Action: "view"},
		}, nil)

	access, err := svc.ResolveAccess(context.Background(), userID.String())

	assert.NoError(t, err)
	assert.True(t, access.HasRole("admin"))
	assert.False(t, access.HasRole("employee"), "elevated identity must not also report employee")
	assert.True(t, access.HasPermission("users", "view"))
}

func TestService_ResolveAccess_CustomRoleGrant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	roleID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return([]rbac.UserRole{customAssignment(userID, roleID)}, nil)
	mockRepo.EXPECT().
		FindCustomRoleByID(gomock.Any(), roleID.String()).
		Return(&rbac.CustomRole{ID: roleID, Name: "Recruiter", IsActive: true}, nil)
	mockRepo.EXPECT().
		ListGrantsForRoles(gomock.Any(), gomock.Any()).
		Return([]rbac.GrantRow{
			{RoleKind: rbac.RoleKindCustom, CustomRoleID: &roleID, Module: "users", Action: "view"},
		}, nil)

	access, err := svc.ResolveAccess(context.Background(), userID.String())

	assert.NoError(t, err)
	assert.True(t, access.HasRole("Recruiter"))
	assert.True(t, access.HasPermission("users", "view"))
	assert.False(t, access.HasPermission("users", "delete"))
	assert.False(t, access.IsAdmin())
}

func TestService_ResolveAccess_QueryErrorYieldsEmptyAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return(nil, errors.New("db error"))

	access, err := svc.ResolveAccess(context.Background(), userID.String())

	// Role kosong dan fetch gagal sengaja identik dari sisi caller.
	assert.NoError(t, err)
	assert.Empty(t, access.Roles)
	assert.False(t, access.HasPermission("users", "view"))
	assert.False(t, access.IsAdmin())
}

func TestService_ResolveAccess_NoAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return(nil, nil)

	access, err := svc.ResolveAccess(context.Background(), userID.String())

	assert.NoError(t, err)
	assert.Empty(t, access.Roles)
	assert.Empty(t, access.Permissions)
}

func TestService_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	hrRole := rbac.RoleHR
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	mockRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return([]rbac.UserRole{systemAssignment(userID, rbac.RoleHR)}, nil).
		Times(2)
	mockRepo.EXPECT().
		ListGrantsForRoles(gomock.Any(), gomock.Any()).
		Return([]rbac.GrantRow{
			{RoleKind: rbac.RoleKindSystem, SystemRole: &hrRole, Module: "employees", Action: "view"},
		}, nil).
		Times(2)

	allowed, err := svc.Enforce(context.Background(), userID.String(), "employees", "view")
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(context.Background(), userID.String(), "employees", "delete")
	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestService_AssignRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	actorID := uuid.New().String()
	userID := uuid.New()
	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(db, mockRepo, nil, nil, nil, nil)

	var saved *rbac.UserRole
	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().
		ReplaceAssignment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *rbac.UserRole) error {
			saved = row
			return nil
		})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = svc.AssignRole(context.Background(), actorID, userID.String(), rbac.SystemRoleRef(rbac.RoleManager))

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, rbac.RoleKindSystem, saved.RoleKind)
	assert.Equal(t, rbac.RoleManager, *saved.SystemRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeleteCustomRole_SystemRoleImmutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	// Role sistem ditolak sebelum lookup apapun; not-found akan menyesatkan
	// karena role-nya memang ada.
	err := svc.DeleteCustomRole(context.Background(), uuid.New().String(), "admin")
	assert.ErrorIs(t, err, rbacerrors.ErrSystemRoleImmutable)

	_, err = svc.UpdateCustomRole(context.Background(), uuid.New().String(), "super_admin", rbac.UpdateRoleRequest{})
	assert.ErrorIs(t, err, rbacerrors.ErrSystemRoleImmutable)
}

func TestService_UpdateRolePermissions_UnknownPermissionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(db, mockRepo, nil, nil, nil, nil)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().
		ReplaceRolePermissions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "role_permissions_permission_id_fkey"})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = svc.UpdateRolePermissions(context.Background(), uuid.New().String(),
		rbac.SystemRoleRef(rbac.RoleHR), []string{uuid.New().String()})

	assert.ErrorIs(t, err, rbacerrors.ErrPermissionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CreateCustomRole_NameConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_rbac.NewMockRepository(ctrl)
	svc := rbac.NewService(nil, mockRepo, nil, nil, nil, nil)

	// Nama role sistem tidak boleh dipakai custom role.
	_, err := svc.CreateCustomRole(context.Background(), uuid.New().String(), rbac.CreateRoleRequest{
		Name: "admin",
	})
	assert.Error(t, err)

	mockRepo.EXPECT().
		FindCustomRoleByName(gomock.Any(), "Recruiter").
		Return(&rbac.CustomRole{ID: uuid.New(), Name: "Recruiter"}, nil)

	_, err = svc.CreateCustomRole(context.Background(), uuid.New().String(), rbac.CreateRoleRequest{
		Name: "Recruiter",
	})
	assert.Error(t, err)
}
