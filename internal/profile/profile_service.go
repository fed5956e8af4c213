package profile

import (
	"context"
	"errors"
	"strings"

	"go-workforce/internal/activitylog"
	"go-workforce/internal/notification"
	profileerrors "go-workforce/internal/profile/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, userID string) (ProfileResponse, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)

	// ForgotEmail mencari email lewat phone atau full name; hanya profile
	// aktif yang bisa ditemukan lewat jalur ini.
	ForgotEmail(ctx context.Context, searchBy, value string) (string, error)
}

type service struct {
	repo     Repository
	activity activitylog.Writer
	notifier notification.Service
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	activity activitylog.Writer,
	notifier notification.Service,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:     repo,
		activity: activity,
		notifier: notifier,
		logger:   logger.Named("profile"),
	}
}

func (s *service) Get(ctx context.Context, userID string) (ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}
	return mapProfileResponse(p), nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}

	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return ProfileResponse{}, err
	}

	if s.activity != nil {
		s.activity.Log(ctx, activitylog.Entry{
			UserID:      userID,
			PerformedBy: userID,
			ActionType:  activitylog.ActionProfileUpdated,
			Description: "Profile updated",
			Module:      "profile",
			Status:      activitylog.StatusSuccess,
		})
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, notification.TypeProfileUpdated,
			"Profile updated",
			"Your profile details were changed.",
		)
	}

	return mapProfileResponse(p), nil
}

func (s *service) ForgotEmail(ctx context.Context, searchBy, value string) (string, error) {
	value = strings.TrimSpace(value)

	var (
		p   *Profile
		err error
	)
	switch searchBy {
	case "phone":
		p, err = s.repo.FindActiveByPhone(ctx, value)
	case "name":
		p, err = s.repo.FindActiveByName(ctx, value)
	default:
		return "", profileerrors.ErrInvalidSearchType
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", profileerrors.ErrProfileNotFound
		}
		return "", err
	}
	return p.Email, nil
}
