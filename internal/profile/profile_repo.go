package profile

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Upsert: insert atau update berdasarkan user_id. Dipakai flow signup
	// supaya retry setelah crash tidak menghasilkan row ganda.
	Upsert(ctx context.Context, p *Profile) error

	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	FindActiveByPhone(ctx context.Context, phone string) (*Profile, error)
	FindActiveByName(ctx context.Context, name string) (*Profile, error)

	List(ctx context.Context, limit, offset int, search string) ([]Profile, int64, error)

	Update(ctx context.Context, p *Profile) error
	UpdateEmail(ctx context.Context, userID, email string) error
	SetActive(ctx context.Context, userID string, active bool) error
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

func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "email", "signup_method", "email_verified", "password_set", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByPhone(ctx context.Context, phone string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly()).
		First(&p, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByName(ctx context.Context, name string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly()).
		Where("LOWER(full_name) = LOWER(?)", name).
		Order("created_at ASC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&Profile{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Profile
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) UpdateEmail(ctx context.Context, userID, email string) error {
	return r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"email": email, "email_verified": true}).Error
}

func (r *repository) SetActive(ctx context.Context, userID string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("is_active", active).Error
}
