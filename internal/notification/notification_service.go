package notification

import (
	"context"

	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Notify membuat notifikasi in-app secara best-effort; kegagalan hanya di-log.
	Notify(ctx context.Context, userID, notifType, title, message string)

	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger.Named("notification")}
}

func (s *service) Notify(ctx context.Context, userID, notifType, title, message string) {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(userID)
	if err != nil {
		l.Warn("notification skipped: bad user id", zap.String("user_id", userID))
		return
	}

	row := &Notification{
		ID:      uuid.New(),
		UserID:  uid,
		Type:    notifType,
		Title:   title,
		Message: message,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		l.Error("notification write failed",
			zap.Error(err),
			zap.String("type", notifType),
			zap.String("user_id", userID),
		)
	}
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, NotificationResponse{
			ID:        row.ID.String(),
			Type:      row.Type,
			Title:     row.Title,
			Message:   row.Message,
			Read:      row.Read,
			CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
