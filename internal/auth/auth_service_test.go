package auth_test

import (
	"context"
	"testing"

	"go-workforce/internal/auth"
	autherrors "go-workforce/internal/auth/errors"
	authMock "go-workforce/internal/auth/mock"
	"go-workforce/internal/otp"
	otpMock "go-workforce/internal/otp/mock"
	"go-workforce/internal/profile"
	profileMock "go-workforce/internal/profile/mock"
	"go-workforce/internal/rbac"
	rbacMock "go-workforce/internal/rbac/mock"
	"go-workforce/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)

	service := auth.NewService(nil, mockRepo, mockProfiles, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	userID := uuid.New()
	identity := &auth.Identity{
		ID:       userID,
		Email:    "budi@example.com",
		Password: string(pw),
	}

	t.Run("Success Login", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, identity.Email).
			Return(identity, nil)
		mockProfiles.EXPECT().
			FindByUserID(ctx, userID.String()).
			Return(&profile.Profile{UserID: userID, FullName: "Budi", IsActive: true}, nil)

		token, refreshToken, resp, err := service.Login(ctx, identity.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, identity.Email, resp.Email)
		assert.Equal(t, "Budi", resp.FullName)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, identity.Email).
			Return(identity, nil)

		_, _, _, err := service.Login(ctx, identity.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Deactivated Profile Blocks Login", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, identity.Email).
			Return(identity, nil)
		mockProfiles.EXPECT().
			FindByUserID(ctx, userID.String()).
			Return(&profile.Profile{UserID: userID, IsActive: false}, nil)

		_, _, _, err := service.Login(ctx, identity.Email, password)
		assert.ErrorIs(t, err, autherrors.ErrAccountDeactivated)
	})
}

func TestService_CompleteSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockRBACRepo := rbacMock.NewMockRepository(ctrl)
	mockRBACSvc := rbacMock.NewMockService(ctrl)
	mockOtp := otpMock.NewMockService(ctrl)

	service := auth.NewService(db, mockRepo, mockProfiles, mockRBACRepo, mockRBACSvc, mockOtp, nil, nil, nil)
	ctx := context.Background()

	req := auth.VerifyOtpRequest{
		Email:    "budi@example.com",
		Otp:      "123456",
		FullName: "Budi Santoso",
		Password: "password123",
	}

	var createdIdentity *auth.Identity
	var upserted *profile.Profile
	var assigned *rbac.UserRole

	mockOtp.EXPECT().WithTx(gomock.Any()).Return(mockOtp)
	mockOtp.EXPECT().Verify(gomock.Any(), req.Email, req.Otp, otp.FlowSignup).Return(nil)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, identity *auth.Identity) error {
			createdIdentity = identity
			return nil
		})

	mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
	mockProfiles.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			upserted = p
			return nil
		})

	mockRBACRepo.EXPECT().WithTx(gomock.Any()).Return(mockRBACRepo)
	mockRBACRepo.EXPECT().ListAssignments(gomock.Any(), gomock.Any()).Return(nil, nil)
	mockRBACRepo.EXPECT().
		ReplaceAssignment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *rbac.UserRole) error {
			assigned = row
			return nil
		})

	mockRBACSvc.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(nil)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	resp, err := service.CompleteSignup(ctx, req)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, createdIdentity)
	assert.Equal(t, createdIdentity.ID.String(), resp.UserID)
	assert.NotEqual(t, req.Password, createdIdentity.Password, "password must be hashed")

	assert.NotNil(t, upserted)
	assert.Equal(t, profile.SignupMethodManual, upserted.SignupMethod)
	assert.True(t, upserted.EmailVerified)
	assert.True(t, upserted.PasswordSet)

	assert.NotNil(t, assigned)
	assert.Equal(t, rbac.RoleKindSystem, assigned.RoleKind)
	assert.Equal(t, rbac.RoleEmployee, *assigned.SystemRole)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_CompleteSignup_KeepsExistingAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockRBACRepo := rbacMock.NewMockRepository(ctrl)
	mockRBACSvc := rbacMock.NewMockService(ctrl)
	mockOtp := otpMock.NewMockService(ctrl)

	service := auth.NewService(db, mockRepo, mockProfiles, mockRBACRepo, mockRBACSvc, mockOtp, nil, nil, nil)

	userID := uuid.New()
	adminRole := rbac.RoleAdmin
	existing := &auth.Identity{ID: userID, Email: "budi@example.com", Password: "hash"}

	mockOtp.EXPECT().WithTx(gomock.Any()).Return(mockOtp)
	mockOtp.EXPECT().Verify(gomock.Any(), existing.Email, "123456", otp.FlowSignup).Return(nil)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().GetByEmail(gomock.Any(), existing.Email).Return(existing, nil)

	mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
	mockProfiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	// Promosi admin sebelumnya tidak boleh tertimpa role employee.
	mockRBACRepo.EXPECT().WithTx(gomock.Any()).Return(mockRBACRepo)
	mockRBACRepo.EXPECT().
		ListAssignments(gomock.Any(), userID.String()).
		Return([]rbac.UserRole{{UserID: userID, RoleKind: rbac.RoleKindSystem, SystemRole: &adminRole}}, nil)

	mockRBACSvc.EXPECT().Invalidate(gomock.Any(), userID.String()).Return(nil)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	resp, err := service.CompleteSignup(context.Background(), auth.VerifyOtpRequest{
		Email: existing.Email,
		Otp:   "123456",
	})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_SendOtp_RejectsNonPublicFlows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOtp := otpMock.NewMockService(ctrl)
	service := auth.NewService(nil, nil, nil, nil, nil, mockOtp, nil, nil, nil)

	// Flow ganti email hanya diterbitkan lewat tahapan email-change;
	// tidak ada ekspektasi Request, endpoint publik harus menolak.
	for _, flow := range []string{otp.FlowEmailChangeCurrent, otp.FlowEmailChangeNew, "bogus"} {
		err := service.SendOtp(context.Background(), "budi@example.com", flow)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr, "flow %s", flow)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	}

	// Flow publik tetap jalan.
	mockOtp.EXPECT().Request(gomock.Any(), "budi@example.com", otp.FlowPasswordReset).Return(nil)
	assert.NoError(t, service.SendOtp(context.Background(), "budi@example.com", otp.FlowPasswordReset))

	mockOtp.EXPECT().Request(gomock.Any(), "budi@example.com", otp.FlowSignup).Return(nil)
	assert.NoError(t, service.SendOtp(context.Background(), "budi@example.com", ""))
}

func TestService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockOtp := otpMock.NewMockService(ctrl)

	service := auth.NewService(db, mockRepo, mockProfiles, nil, nil, mockOtp, nil, nil, nil)

	userID := uuid.New()
	identity := &auth.Identity{ID: userID, Email: "budi@example.com", Password: "oldhash"}

	mockOtp.EXPECT().WithTx(gomock.Any()).Return(mockOtp)
	mockOtp.EXPECT().Verify(gomock.Any(), identity.Email, "123456", otp.FlowPasswordReset).Return(nil)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().GetByEmail(gomock.Any(), identity.Email).Return(identity, nil)
	mockRepo.EXPECT().
		UpdatePassword(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hashed string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("newpassword")))
			return nil
		})

	mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
	mockProfiles.EXPECT().
		FindByUserID(gomock.Any(), userID.String()).
		Return(&profile.Profile{UserID: userID, PasswordSet: false, IsActive: true}, nil)
	mockProfiles.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.True(t, p.PasswordSet)
			return nil
		})

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	err = service.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Email:    identity.Email,
		Otp:      "123456",
		Password: "newpassword",
	})

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_VerifyCurrentEmail_NeverUpdatesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockOtp := otpMock.NewMockService(ctrl)

	service := auth.NewService(nil, mockRepo, nil, nil, nil, mockOtp, nil, nil, nil)

	userID := uuid.New()
	identity := &auth.Identity{ID: userID, Email: "old@example.com"}

	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(identity, nil)
	// Tidak ada ekspektasi UpdateEmail: verifikasi email lama hanya
	// memicu OTP kedua ke alamat baru.
	mockOtp.EXPECT().Verify(gomock.Any(), "old@example.com", "123456", otp.FlowEmailChangeCurrent).Return(nil)
	mockOtp.EXPECT().Request(gomock.Any(), "new@example.com", otp.FlowEmailChangeNew).Return(nil)

	err := service.VerifyCurrentEmail(context.Background(), userID.String(), "123456", "new@example.com")
	assert.NoError(t, err)
}

func TestService_ConfirmEmailChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockOtp := otpMock.NewMockService(ctrl)

	service := auth.NewService(db, mockRepo, mockProfiles, nil, nil, mockOtp, nil, nil, nil)

	userID := uuid.New()
	identity := &auth.Identity{ID: userID, Email: "old@example.com"}

	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(identity, nil)
	mockRepo.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, gorm.ErrRecordNotFound)

	mockOtp.EXPECT().WithTx(gomock.Any()).Return(mockOtp)
	mockOtp.EXPECT().Verify(gomock.Any(), "new@example.com", "654321", otp.FlowEmailChangeNew).Return(nil)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().UpdateEmail(gomock.Any(), userID, "new@example.com").Return(nil)

	mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
	mockProfiles.EXPECT().UpdateEmail(gomock.Any(), userID.String(), "new@example.com").Return(nil)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	err = service.ConfirmEmailChange(context.Background(), userID.String(), "new@example.com", "654321")
	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_ConfirmEmailChange_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(nil, mockRepo, nil, nil, nil, nil, nil, nil, nil)

	userID := uuid.New()
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(&auth.Identity{ID: userID, Email: "old@example.com"}, nil)
	mockRepo.EXPECT().
		GetByEmail(gomock.Any(), "taken@example.com").
		Return(&auth.Identity{ID: uuid.New(), Email: "taken@example.com"}, nil)

	err := service.ConfirmEmailChange(context.Background(), userID.String(), "taken@example.com", "654321")
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}
