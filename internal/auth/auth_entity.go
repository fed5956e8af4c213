package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity menyimpan kredensial login; data tampilan hidup di tabel profiles.
type Identity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Identity) TableName() string {
	return "identities"
}
