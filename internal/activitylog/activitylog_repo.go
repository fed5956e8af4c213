package activitylog

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, row *ActivityLog) error
	ListRecent(ctx context.Context, limit, offset int) ([]ActivityLog, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]ActivityLog, int64, error)
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

func (r *repository) Create(ctx context.Context, row *ActivityLog) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) ListRecent(ctx context.Context, limit, offset int) ([]ActivityLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, seq DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]ActivityLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&ActivityLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ActivityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, seq DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}
