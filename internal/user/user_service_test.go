package user_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-workforce/internal/auth"
	authMock "go-workforce/internal/auth/mock"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	kafkaMock "go-workforce/internal/messaging/kafka/mock"
	"go-workforce/internal/profile"
	profileMock "go-workforce/internal/profile/mock"
	"go-workforce/internal/rbac"
	rbacMock "go-workforce/internal/rbac/mock"
	"go-workforce/internal/user"
	usererrors "go-workforce/internal/user/errors"
	userMock "go-workforce/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := userMock.NewMockRepository(ctrl)
	mockIdentity := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockRBACRepo := rbacMock.NewMockRepository(ctrl)
	mockRBACSvc := rbacMock.NewMockService(ctrl)

	service := user.NewService(db, mockRepo, mockIdentity, mockProfiles, mockRBACRepo, mockRBACSvc, nil, nil, nil, nil)
	ctx := context.Background()

	actorID := uuid.New().String()
	req := user.CreateUserRequest{
		Email:    "Siti@Example.com",
		Password: "password123",
		FullName: "  Siti Rahayu ",
	}

	var createdIdentity *auth.Identity
	var upserted *profile.Profile
	var assigned *rbac.UserRole

	mockIdentity.EXPECT().GetByEmail(ctx, "siti@example.com").Return(nil, gorm.ErrRecordNotFound)

	dbMock.ExpectBegin()
	mockIdentity.EXPECT().WithTx(gomock.Any()).Return(mockIdentity)
	mockIdentity.EXPECT().
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
	mockRBACRepo.EXPECT().
		ReplaceAssignment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ur *rbac.UserRole) error {
			assigned = ur
			return nil
		})
	dbMock.ExpectCommit()
	mockRBACSvc.EXPECT().Invalidate(gomock.Any(), gomock.Any())

	resp, err := service.Create(ctx, actorID, req)

	assert.NoError(t, err)
	assert.Equal(t, "siti@example.com", resp.Email)
	assert.Equal(t, "Siti Rahayu", resp.FullName)
	assert.True(t, resp.IsActive)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdIdentity.Password), []byte(req.Password)))
	assert.Equal(t, createdIdentity.ID, upserted.UserID)
	assert.Equal(t, profile.SignupMethodInvite, upserted.SignupMethod)
	assert.True(t, upserted.EmailVerified)
	assert.True(t, upserted.PasswordSet)
	assert.Equal(t, rbac.RoleEmployee, assigned.Ref().System)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := authMock.NewMockRepository(ctrl)
	service := user.NewService(nil, nil, mockIdentity, nil, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	mockIdentity.EXPECT().
		GetByEmail(ctx, "siti@example.com").
		Return(&auth.Identity{ID: uuid.New(), Email: "siti@example.com"}, nil)

	_, err := service.Create(ctx, uuid.New().String(), user.CreateUserRequest{
		Email:    "siti@example.com",
		Password: "password123",
		FullName: "Siti Rahayu",
	})

	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
}

func TestService_Create_DuplicateRaceMapsUniqueViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockIdentity := authMock.NewMockRepository(ctrl)
	service := user.NewService(db, nil, mockIdentity, nil, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	// Dua request paralel: pengecekan awal lolos, insert kedua kena unique index.
	mockIdentity.EXPECT().GetByEmail(ctx, "siti@example.com").Return(nil, gorm.ErrRecordNotFound)
	dbMock.ExpectBegin()
	mockIdentity.EXPECT().WithTx(gomock.Any()).Return(mockIdentity)
	mockIdentity.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "identities_email_key"})
	dbMock.ExpectRollback()

	_, err = service.Create(ctx, uuid.New().String(), user.CreateUserRequest{
		Email:    "siti@example.com",
		Password: "password123",
		FullName: "Siti Rahayu",
	})

	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockIdentity := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)
	mockRBACSvc := rbacMock.NewMockService(ctrl)

	service := user.NewService(db, nil, mockIdentity, mockProfiles, nil, mockRBACSvc, nil, nil, nil, nil)
	ctx := context.Background()

	userID := uuid.New()
	mockIdentity.EXPECT().GetByID(ctx, userID).Return(&auth.Identity{ID: userID}, nil)

	dbMock.ExpectBegin()
	mockIdentity.EXPECT().WithTx(gomock.Any()).Return(mockIdentity)
	mockIdentity.EXPECT().Delete(gomock.Any(), userID).Return(nil)
	mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
	mockProfiles.EXPECT().SetActive(gomock.Any(), userID.String(), false).Return(nil)
	dbMock.ExpectCommit()
	mockRBACSvc.EXPECT().Invalidate(gomock.Any(), userID.String())

	err = service.Delete(ctx, uuid.New().String(), userID.String())

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestService_UpdateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockIdentity := authMock.NewMockRepository(ctrl)
	mockProfiles := profileMock.NewMockRepository(ctrl)

	service := user.NewService(db, nil, mockIdentity, mockProfiles, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	userID := uuid.New()
	req := user.UpdateEmailRequest{
		UserID:   userID.String(),
		OldEmail: "siti@example.com",
		NewEmail: "siti.rahayu@example.com",
	}

	t.Run("Success", func(t *testing.T) {
		mockIdentity.EXPECT().GetByID(ctx, userID).Return(&auth.Identity{ID: userID, Email: req.OldEmail}, nil)
		mockIdentity.EXPECT().GetByEmail(ctx, req.NewEmail).Return(nil, gorm.ErrRecordNotFound)

		dbMock.ExpectBegin()
		mockIdentity.EXPECT().WithTx(gomock.Any()).Return(mockIdentity)
		mockIdentity.EXPECT().UpdateEmail(gomock.Any(), userID, req.NewEmail).Return(nil)
		mockProfiles.EXPECT().WithTx(gomock.Any()).Return(mockProfiles)
		mockProfiles.EXPECT().UpdateEmail(gomock.Any(), userID.String(), req.NewEmail).Return(nil)
		dbMock.ExpectCommit()

		resp, err := service.UpdateEmail(ctx, uuid.New().String(), req)

		assert.NoError(t, err)
		assert.Equal(t, req.NewEmail, resp.Email)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("New Email Already Registered", func(t *testing.T) {
		mockIdentity.EXPECT().GetByID(ctx, userID).Return(&auth.Identity{ID: userID, Email: req.OldEmail}, nil)
		mockIdentity.EXPECT().
			GetByEmail(ctx, req.NewEmail).
			Return(&auth.Identity{ID: uuid.New(), Email: req.NewEmail}, nil)

		_, err := service.UpdateEmail(ctx, uuid.New().String(), req)
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("Old Email Mismatch", func(t *testing.T) {
		mockIdentity.EXPECT().GetByID(ctx, userID).Return(&auth.Identity{ID: userID, Email: "lain@example.com"}, nil)

		_, err := service.UpdateEmail(ctx, uuid.New().String(), req)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestService_Invite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := userMock.NewMockRepository(ctrl)
	mockIdentity := authMock.NewMockRepository(ctrl)
	mockOutbox := kafkaMock.NewMockOutboxRepository(ctrl)

	service := user.NewService(db, mockRepo, mockIdentity, nil, nil, nil, mockOutbox, nil, nil, nil)
	ctx := context.Background()

	actorID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		var createdInv *user.TeamInvitation
		var event kafka.OutboxEvent

		mockIdentity.EXPECT().GetByEmail(ctx, "dewi@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().FindPendingInvitationByEmail(ctx, "dewi@example.com").Return(nil, gorm.ErrRecordNotFound)

		dbMock.ExpectBegin()
		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().
			CreateInvitation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *user.TeamInvitation) error {
				createdInv = inv
				return nil
			})
		mockOutbox.EXPECT().WithTx(gomock.Any()).Return(mockOutbox)
		mockOutbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				event = ev
				return nil
			})
		dbMock.ExpectCommit()

		resp, err := service.Invite(ctx, actorID, user.InviteRequest{Email: "Dewi@example.com", Role: "hr"})

		assert.NoError(t, err)
		assert.Equal(t, "dewi@example.com", resp.Email)
		assert.Equal(t, user.InvitationPending, createdInv.Status)

		assert.Equal(t, events.MailTopic, event.Topic)
		assert.Equal(t, events.MailEventUserInvited, event.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)

		var payload events.InviteMailEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "dewi@example.com", payload.Email)
		assert.Equal(t, "hr", payload.RoleLabel)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Super Admin Cannot Be Invited", func(t *testing.T) {
		_, err := service.Invite(ctx, actorID, user.InviteRequest{Email: "dewi@example.com", Role: "super_admin"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("Already Pending", func(t *testing.T) {
		mockIdentity.EXPECT().GetByEmail(ctx, "dewi@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().
			FindPendingInvitationByEmail(ctx, "dewi@example.com").
			Return(&user.TeamInvitation{ID: uuid.New(), Email: "dewi@example.com"}, nil)

		_, err := service.Invite(ctx, actorID, user.InviteRequest{Email: "dewi@example.com", Role: "hr"})
		assert.ErrorIs(t, err, usererrors.ErrInvitationAlreadySent)
	})
}
