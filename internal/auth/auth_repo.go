package auth

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Identity, error)

	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error

	// Delete soft-delete; email bekas identity terhapus bisa dipakai ulang
	// karena uniqueIndex hidup berdampingan dengan deleted_at.
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, identity *Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *repository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return r.db.WithContext(ctx).
		Model(&Identity{}).
		Where("id = ?", id).
		Update("email", email).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&Identity{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Identity{}, "id = ?", id).Error
}
