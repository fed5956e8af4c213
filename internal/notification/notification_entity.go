package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeRoleChanged    = "role_changed"
	TypeInvite         = "invite"
	TypeProfileUpdated = "profile_updated"
	TypeEmailChanged   = "email_changed"
)

type Notification struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string    `gorm:"column:type;type:varchar(50);not null"`
	Title     string    `gorm:"column:title;type:varchar(255);not null"`
	Message   string    `gorm:"column:message;type:text"`
	Read      bool      `gorm:"column:read;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }
