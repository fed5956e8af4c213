package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRevoked  = "revoked"
)

// TeamInvitation adalah undangan bergabung yang dikirim oleh admin.
// Baris accepted tidak pernah dihapus supaya riwayat onboarding tetap ada.
type TeamInvitation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Role      string    `gorm:"size:64" json:"role"`
	InvitedBy uuid.UUID `gorm:"type:uuid" json:"invited_by"`
	Status    string    `gorm:"size:16;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamInvitation) TableName() string {
	return "team_invitations"
}
