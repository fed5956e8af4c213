package otp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	kafkamock "go-workforce/internal/messaging/kafka/mock"
	"go-workforce/internal/otp"
	otperrors "go-workforce/internal/otp/errors"
	mock_otp "go-workforce/internal/otp/mock"
	"go-workforce/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestService_Request(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	mockOutbox := kafkamock.NewMockOutboxRepository(ctrl)
	svc := otp.NewService(db, mockRepo, mockOutbox, nil, nil)

	var savedRow *otp.OtpVerification
	var savedEvent kafka.OutboxEvent

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().
		CreateVerification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *otp.OtpVerification) error {
			savedRow = row
			return nil
		})
	mockOutbox.EXPECT().WithTx(gomock.Any()).Return(mockOutbox)
	mockOutbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
			savedEvent = event
			return nil
		})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = svc.Request(context.Background(), "budi@example.com", otp.FlowSignup)

	assert.NoError(t, err)
	assert.NotNil(t, savedRow)
	assert.Len(t, savedRow.OtpCode, 6)
	assert.Equal(t, "budi@example.com", savedRow.Email)
	assert.Equal(t, otp.FlowSignup, savedRow.Flow)
	assert.WithinDuration(t, time.Now().UTC().Add(otp.CodeTTL), savedRow.ExpiresAt, 5*time.Second)

	assert.Equal(t, events.MailTopic, savedEvent.Topic)
	assert.Equal(t, events.MailEventOtpRequested, savedEvent.EventType)
	assert.Equal(t, kafka.OutboxStatusPending, savedEvent.Status)

	var mail events.OtpMailEvent
	assert.NoError(t, json.Unmarshal(savedEvent.Payload, &mail))
	assert.Equal(t, savedRow.OtpCode, mail.Code)
	assert.Equal(t, otp.FlowSignup, mail.Flow)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_Cooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, cacheMock := redismock.NewClientMock()
	mockRepo := mock_otp.NewMockRepository(ctrl)
	mockOutbox := kafkamock.NewMockOutboxRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, mockOutbox, cache, nil)

	// SETNX gagal berarti kode sebelumnya belum lewat masa cooldown.
	cacheMock.ExpectSetNX("otp:cooldown:budi@example.com", "1", otp.ResendCooldown).SetVal(false)

	err := svc.Request(context.Background(), "budi@example.com", otp.FlowSignup)

	assert.ErrorIs(t, err, otperrors.ErrOtpCooldown)
	assert.NoError(t, cacheMock.ExpectationsWereMet())
}

func activeRow(code string, attempts int) *otp.OtpVerification {
	return &otp.OtpVerification{
		ID:        uuid.New(),
		Email:     "budi@example.com",
		OtpCode:   code,
		Flow:      otp.FlowSignup,
		Attempts:  attempts,
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	}
}

func TestService_Verify_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	row := activeRow("123456", 0)
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)
	mockRepo.EXPECT().MarkVerified(gomock.Any(), row.ID.String()).Return(nil)

	err := svc.Verify(context.Background(), row.Email, "123456", otp.FlowSignup)
	assert.NoError(t, err)
}

func TestService_Verify_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	mockRepo.EXPECT().
		FindLatestByEmail(gomock.Any(), "budi@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.Verify(context.Background(), "budi@example.com", "123456", otp.FlowSignup)
	assert.ErrorIs(t, err, otperrors.ErrOtpNotFound)
}

func TestService_Verify_MismatchIncrementsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	row := activeRow("123456", 2)
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)
	mockRepo.EXPECT().IncrementAttempts(gomock.Any(), row.ID.String()).Return(nil).Times(1)

	err := svc.Verify(context.Background(), row.Email, "999999", otp.FlowSignup)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "2 attempt(s) remaining")
}

func TestService_Verify_LockedAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	// Attempt ke-5 sudah terpakai: kode benar pun ditolak.
	row := activeRow("123456", otp.MaxAttempts)
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)

	err := svc.Verify(context.Background(), row.Email, "123456", otp.FlowSignup)
	assert.ErrorIs(t, err, otperrors.ErrOtpLocked)
}

func TestService_Verify_ExpiredBeatsCorrectCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	row := activeRow("123456", 0)
	row.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)

	err := svc.Verify(context.Background(), row.Email, "123456", otp.FlowSignup)
	assert.ErrorIs(t, err, otperrors.ErrOtpExpired)
}

func TestService_Verify_AlreadyVerifiedIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	row := activeRow("123456", 1)
	row.Verified = true
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)

	err := svc.Verify(context.Background(), row.Email, "123456", otp.FlowSignup)
	assert.NoError(t, err)
}

func TestService_Verify_VerifiedRowStillRejectsWrongCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	// Row verified bukan tiket bebas: kode sembarang tetap ditolak,
	// tanpa menaikkan attempts.
	row := activeRow("123456", 1)
	row.Verified = true
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)

	err := svc.Verify(context.Background(), row.Email, "000000", otp.FlowSignup)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestService_Verify_FlowMismatchLooksLikeNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	// Kode signup tidak berlaku untuk verifikasi ganti email,
	// meski kodenya benar.
	row := activeRow("123456", 0)
	mockRepo.EXPECT().FindLatestByEmail(gomock.Any(), row.Email).Return(row, nil)

	err := svc.Verify(context.Background(), row.Email, "123456", otp.FlowEmailChangeNew)
	assert.ErrorIs(t, err, otperrors.ErrOtpNotFound)
}

func TestService_PurgeExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_otp.NewMockRepository(ctrl)
	svc := otp.NewService(nil, mockRepo, nil, nil, nil)

	mockRepo.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(3), nil)

	deleted, err := svc.PurgeExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
