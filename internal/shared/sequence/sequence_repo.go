package sequence

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/sequence_repo_mock.go -package=mock . Repository
type Repository interface {
	NextValue(ctx context.Context, stream string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// NextValue mengambil nilai berikutnya untuk sebuah stream secara atomik.
// UPSERT + increment dalam satu statement agar aman dari race antar writer.
func (r *repository) NextValue(ctx context.Context, stream string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (stream, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (stream) DO UPDATE
		SET last_value = sequences.last_value + 1, updated_at = now()
		RETURNING last_value
	`, stream).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
