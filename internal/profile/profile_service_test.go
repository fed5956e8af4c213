package profile_test

import (
	"context"
	"testing"

	"go-workforce/internal/profile"
	profileerrors "go-workforce/internal/profile/errors"
	mock_profile "go-workforce/internal/profile/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockRepo := mock_profile.NewMockRepository(ctrl)
	svc := profile.NewService(mockRepo, nil, nil, nil)

	existing := &profile.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		IsActive: true,
	}
	mockRepo.EXPECT().FindByUserID(gomock.Any(), userID.String()).Return(existing, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Equal(t, "Budi S.", p.FullName)
			assert.Equal(t, "+628123456789", p.Phone)
			assert.Equal(t, "budi@example.com", p.Email, "email only changes via the verified flow")
			return nil
		})

	name := "  Budi S.  "
	phone := "+628123456789"
	resp, err := svc.Update(context.Background(), userID.String(), profile.UpdateProfileRequest{
		FullName: &name,
		Phone:    &phone,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Budi S.", resp.FullName)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_profile.NewMockRepository(ctrl)
	svc := profile.NewService(mockRepo, nil, nil, nil)

	mockRepo.EXPECT().
		FindByUserID(gomock.Any(), gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), uuid.NewString(), profile.UpdateProfileRequest{})
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
}

func TestService_ForgotEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_profile.NewMockRepository(ctrl)
	svc := profile.NewService(mockRepo, nil, nil, nil)

	mockRepo.EXPECT().
		FindActiveByPhone(gomock.Any(), "+628123456789").
		Return(&profile.Profile{Email: "budi@example.com"}, nil)

	email, err := svc.ForgotEmail(context.Background(), "phone", "+628123456789")
	assert.NoError(t, err)
	assert.Equal(t, "budi@example.com", email)
}

func TestService_ForgotEmail_InvalidSearchType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_profile.NewMockRepository(ctrl)
	svc := profile.NewService(mockRepo, nil, nil, nil)

	_, err := svc.ForgotEmail(context.Background(), "address", "Jl. Sudirman 1")
	assert.ErrorIs(t, err, profileerrors.ErrInvalidSearchType)
}

func TestService_ForgotEmail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_profile.NewMockRepository(ctrl)
	svc := profile.NewService(mockRepo, nil, nil, nil)

	mockRepo.EXPECT().
		FindActiveByName(gomock.Any(), "Nobody Here").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ForgotEmail(context.Background(), "name", "Nobody Here")
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
}
