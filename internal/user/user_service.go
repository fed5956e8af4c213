package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-workforce/internal/activitylog"
	"go-workforce/internal/auth"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/notification"
	"go-workforce/internal/profile"
	"go-workforce/internal/rbac"
	"go-workforce/internal/shared/contextutil"
	usererrors "go-workforce/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, page, limit int, search string) ([]UserWithRolesResponse, int64, error)
	Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, userID string) error
	UpdateEmail(ctx context.Context, actorID string, req UpdateEmailRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, actorID, userID string, isActive bool) error

	Invite(ctx context.Context, actorID string, req InviteRequest) (InvitationResponse, error)
	ListInvitations(ctx context.Context, page, limit int) ([]InvitationResponse, int64, error)
	RevokeInvitation(ctx context.Context, actorID, invitationID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	identity auth.Repository
	profiles profile.Repository
	rbacRepo rbac.Repository
	rbacSvc  rbac.Service
	outbox   kafka.OutboxRepository
	activity activitylog.Writer
	notifier notification.Service
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	identity auth.Repository,
	profiles profile.Repository,
	rbacRepo rbac.Repository,
	rbacSvc rbac.Service,
	outbox kafka.OutboxRepository,
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
		identity: identity,
		profiles: profiles,
		rbacRepo: rbacRepo,
		rbacSvc:  rbacSvc,
		outbox:   outbox,
		activity: activity,
		notifier: notifier,
		logger:   logger.Named("user"),
	}
}

func (s *service) List(ctx context.Context, page, limit int, search string) ([]UserWithRolesResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	profiles, total, err := s.profiles.List(ctx, limit, offset, search)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserWithRolesResponse, 0, len(profiles))
	for _, p := range profiles {
		row := UserWithRolesResponse{
			ID:       p.UserID.String(),
			Email:    p.Email,
			FullName: p.FullName,
			IsActive: p.IsActive,
			Roles:    []string{},
		}
		// Label role datang dari snapshot akses ber-cache, bukan join manual.
		access, err := s.rbacSvc.ResolveAccess(ctx, p.UserID.String())
		if err == nil {
			for _, r := range access.Roles {
				row.Roles = append(row.Roles, r.Label)
			}
		}
		out = append(out, row)
	}
	return out, total, nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Cek duplikat lebih dulu supaya pesan errornya jelas
	if _, err := s.identity.GetByEmail(ctx, email); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	identity := &auth.Identity{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
	}
	if err := s.identity.WithTx(tx).Create(ctx, identity); err != nil {
		// Unique index tetap bisa kalah balapan dengan request paralel.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return UserResponse{}, usererrors.ErrEmailTaken
		}
		return UserResponse{}, err
	}

	prof := &profile.Profile{
		ID:            uuid.New(),
		UserID:        identity.ID,
		FullName:      strings.TrimSpace(req.FullName),
		Email:         email,
		SignupMethod:  profile.SignupMethodInvite,
		EmailVerified: true,
		PasswordSet:   true,
		IsActive:      true,
	}
	if err := s.profiles.WithTx(tx).Upsert(ctx, prof); err != nil {
		return UserResponse{}, err
	}

	actor, _ := uuid.Parse(actorID)
	assignment := rbac.NewUserRole(identity.ID, rbac.SystemRoleRef(rbac.RoleEmployee), actor)
	if err := s.rbacRepo.WithTx(tx).ReplaceAssignment(ctx, assignment); err != nil {
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.rbacSvc.Invalidate(ctx, identity.ID.String())
	s.audit(ctx, actorID, identity.ID.String(), activitylog.ActionUserCreated,
		"User account created by administrator")

	l.Info("user created", zap.String("user_id", identity.ID.String()))
	return UserResponse{
		ID:        identity.ID.String(),
		Email:     identity.Email,
		FullName:  prof.FullName,
		IsActive:  true,
		CreatedAt: identity.CreatedAt,
	}, nil
}

func (s *service) Delete(ctx context.Context, actorID, userID string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	if _, err := s.identity.GetByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.identity.WithTx(tx).Delete(ctx, uid); err != nil {
		return err
	}
	// Profil ikut nonaktif supaya tidak lagi muncul di forgot-email.
	if err := s.profiles.WithTx(tx).SetActive(ctx, userID, false); err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.publishLifecycle(ctx, tx, events.UserEventDeleted, userID, actorID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.rbacSvc.Invalidate(ctx, userID)
	s.audit(ctx, actorID, userID, activitylog.ActionUserDeleted, "User account deleted")

	l.Info("user deleted", zap.String("user_id", userID))
	return nil
}

func (s *service) UpdateEmail(ctx context.Context, actorID string, req UpdateEmailRequest) (UserResponse, error) {
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	newEmail := strings.ToLower(strings.TrimSpace(req.NewEmail))

	identity, err := s.identity.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	if !strings.EqualFold(identity.Email, req.OldEmail) {
		return UserResponse{}, usererrors.ErrUserNotFound
	}
	if _, err := s.identity.GetByEmail(ctx, newEmail); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	if err := s.identity.WithTx(tx).UpdateEmail(ctx, uid, newEmail); err != nil {
		return UserResponse{}, err
	}
	if err := s.profiles.WithTx(tx).UpdateEmail(ctx, req.UserID, newEmail); err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.audit(ctx, actorID, req.UserID, activitylog.ActionEmailChanged,
		"Email changed by administrator")
	if s.notifier != nil {
		s.notifier.Notify(ctx, req.UserID, notification.TypeEmailChanged,
			"Email address changed",
			"An administrator updated your login email to "+newEmail+".",
		)
	}

	return UserResponse{
		ID:        identity.ID.String(),
		Email:     newEmail,
		CreatedAt: identity.CreatedAt,
	}, nil
}

func (s *service) ToggleStatus(ctx context.Context, actorID, userID string, isActive bool) error {
	if _, err := uuid.Parse(userID); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if err := s.profiles.SetActive(ctx, userID, isActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	action := activitylog.ActionUserDeactivated
	desc := "User account deactivated"
	if isActive {
		action = activitylog.ActionUserUpdated
		desc = "User account reactivated"
	}
	s.audit(ctx, actorID, userID, action, desc)

	if !isActive {
		if err := s.publishLifecycle(ctx, nil, events.UserEventDeactivated, userID, actorID); err != nil {
			s.logger.Error("publish deactivation event failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// publishLifecycle menitipkan event lifecycle ke outbox, ikut transaksi bila ada.
func (s *service) publishLifecycle(ctx context.Context, tx *sql.Tx, eventType, userID, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.UserLifecycleEvent{
		EventType:  eventType,
		UserID:     userID,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}

	repo := s.outbox
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	return repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "user",
		AggregateID:   userID,
		EventType:     eventType,
		Topic:         events.UserLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Invite(ctx context.Context, actorID string, req InviteRequest) (InvitationResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role, ok := rbac.ParseSystemRole(req.Role)
	if !ok || role == rbac.RoleSuperAdmin {
		return InvitationResponse{}, usererrors.ErrInvalidRole
	}
	if _, err := s.identity.GetByEmail(ctx, email); err == nil {
		return InvitationResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return InvitationResponse{}, err
	}
	if _, err := s.repo.FindPendingInvitationByEmail(ctx, email); err == nil {
		return InvitationResponse{}, usererrors.ErrInvitationAlreadySent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return InvitationResponse{}, err
	}

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return InvitationResponse{}, usererrors.ErrInvalidUserID
	}
	inv := &TeamInvitation{
		ID:        uuid.New(),
		Email:     email,
		Role:      string(role),
		InvitedBy: actor,
		Status:    InvitationPending,
	}

	payload, err := json.Marshal(events.InviteMailEvent{
		EventType:  events.MailEventUserInvited,
		Email:      email,
		InvitedBy:  actorID,
		RoleLabel:  string(role),
		OccurredAt: time.Now(),
	})
	if err != nil {
		return InvitationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvitationResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateInvitation(ctx, inv); err != nil {
		return InvitationResponse{}, err
	}
	// Undangan dan mail event satu transaksi, worker yang mengirimkan.
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "team_invitation",
		AggregateID:   inv.ID.String(),
		EventType:     events.MailEventUserInvited,
		Topic:         events.MailTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return InvitationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return InvitationResponse{}, err
	}

	s.audit(ctx, actorID, inv.ID.String(), activitylog.ActionUserInvited,
		"Invitation sent to "+email)
	if s.notifier != nil {
		s.notifier.Notify(ctx, actorID, notification.TypeInvite,
			"Invitation sent",
			"Your invitation to "+email+" is on its way.",
		)
	}

	l.Info("invitation created",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("role", inv.Role),
	)
	return mapInvitationResponse(inv), nil
}

func (s *service) ListInvitations(ctx context.Context, page, limit int) ([]InvitationResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	invitations, total, err := s.repo.ListInvitations(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]InvitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, mapInvitationResponse(&invitations[i]))
	}
	return out, total, nil
}

func (s *service) RevokeInvitation(ctx context.Context, actorID, invitationID string) error {
	id, err := uuid.Parse(invitationID)
	if err != nil {
		return usererrors.ErrInvitationNotFound
	}
	if err := s.repo.UpdateInvitationStatus(ctx, id, InvitationRevoked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrInvitationNotFound
		}
		return err
	}
	s.audit(ctx, actorID, invitationID, activitylog.ActionUserUpdated, "Invitation revoked")
	return nil
}

func (s *service) audit(ctx context.Context, actorID, targetID, action, desc string) {
	if s.activity == nil {
		return
	}
	s.activity.Log(ctx, activitylog.Entry{
		UserID:      targetID,
		PerformedBy: actorID,
		ActionType:  action,
		Description: desc,
		Module:      "users",
		Target:      targetID,
		Status:      activitylog.StatusSuccess,
	})
}
