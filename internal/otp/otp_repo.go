package otp

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=otp_repo.go -destination=mock/otp_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateVerification(ctx context.Context, row *OtpVerification) error
	FindLatestByEmail(ctx context.Context, email string) (*OtpVerification, error)
	IncrementAttempts(ctx context.Context, id string) error
	MarkVerified(ctx context.Context, id string) error

	// DeleteExpired membersihkan row yang sudah lewat masa berlaku;
	// dipanggil scheduler, bukan request path.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
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

func (r *repository) CreateVerification(ctx context.Context, row *OtpVerification) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindLatestByEmail: hanya row terbaru yang berlaku; kode lama otomatis
// mati begitu kode baru diterbitkan.
func (r *repository) FindLatestByEmail(ctx context.Context, email string) (*OtpVerification, error) {
	var row OtpVerification
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) IncrementAttempts(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&OtpVerification{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *repository) MarkVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&OtpVerification{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&OtpVerification{})
	return res.RowsAffected, res.Error
}
