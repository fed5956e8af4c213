package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SignupMethodManual = "manual"
	SignupMethodInvite = "invite"
)

// Profile: satu row per identity. Tidak pernah di-hard-delete;
// deactivation cukup set is_active = false.
type Profile struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FullName      string    `gorm:"column:full_name;type:varchar(255)"`
	Email         string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Phone         string    `gorm:"column:phone;type:varchar(32)"`
	AvatarURL     string    `gorm:"column:avatar_url;type:text"`
	SignupMethod  string    `gorm:"column:signup_method;type:varchar(32);default:manual"`
	EmailVerified bool      `gorm:"column:email_verified;default:false"`
	PasswordSet   bool      `gorm:"column:password_set;default:false"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ActiveOnly membatasi query ke profile yang belum dinonaktifkan.
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}
