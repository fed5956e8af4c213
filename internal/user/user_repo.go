package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateInvitation(ctx context.Context, inv *TeamInvitation) error
	FindPendingInvitationByEmail(ctx context.Context, email string) (*TeamInvitation, error)
	ListInvitations(ctx context.Context, limit, offset int) ([]TeamInvitation, int64, error)
	UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) CreateInvitation(ctx context.Context, inv *TeamInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindPendingInvitationByEmail(ctx context.Context, email string) (*TeamInvitation, error) {
	var inv TeamInvitation
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, InvitationPending).
		Order("created_at DESC").
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) ListInvitations(ctx context.Context, limit, offset int) ([]TeamInvitation, int64, error) {
	var (
		invitations []TeamInvitation
		total       int64
	)
	if err := r.db.WithContext(ctx).Model(&TeamInvitation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&invitations).Error
	if err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

func (r *repository) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&TeamInvitation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
