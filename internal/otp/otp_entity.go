package otp

import (
	"time"

	"github.com/google/uuid"
)

// Flow menandai untuk keperluan apa kode dikirim; dipakai consumer mail
// untuk memilih template.
const (
	FlowSignup             = "signup"
	FlowEmailChangeCurrent = "email_change_current"
	FlowEmailChangeNew     = "email_change_new"
	FlowPasswordReset      = "password_reset"
)

const (
	// CodeTTL adalah umur satu kode sejak diterbitkan.
	CodeTTL = 10 * time.Minute

	// MaxAttempts: setelah ini kode terkunci, termasuk untuk kode yang benar.
	MaxAttempts = 5

	// ResendCooldown dijaga server-side lewat redis, bukan client.
	ResendCooldown = 90 * time.Second
)

type OtpVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"size:255;not null;index"`
	OtpCode   string    `gorm:"size:6;not null"`
	Flow      string    `gorm:"size:32;not null"`
	Attempts  int       `gorm:"not null;default:0"`
	Verified  bool      `gorm:"not null;default:false"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OtpVerification) TableName() string {
	return "otp_verifications"
}

func (o *OtpVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

func (o *OtpVerification) Locked() bool {
	return o.Attempts >= MaxAttempts
}
