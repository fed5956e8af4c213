package activitylog

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Action types yang dikenal; kolomnya tetap string bebas agar modul baru
// tidak perlu migrasi.
const (
	ActionSignup             = "signup"
	ActionPasswordReset      = "password_reset"
	ActionEmailChanged       = "email_changed"
	ActionRoleAssigned       = "role_assigned"
	ActionRoleCreated        = "role_created"
	ActionRoleUpdated        = "role_updated"
	ActionRoleDeleted        = "role_deleted"
	ActionPermissionsUpdated = "permissions_updated"
	ActionUserCreated        = "user_created"
	ActionUserUpdated        = "user_updated"
	ActionUserDeleted        = "user_deleted"
	ActionUserDeactivated    = "user_deactivated"
	ActionUserInvited        = "user_invited"
	ActionProfileUpdated     = "profile_updated"
)

type ActivityLog struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq         int64      `gorm:"column:seq;not null;index"`
	UserID      *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	PerformedBy *uuid.UUID `gorm:"column:performed_by;type:uuid"`
	ActionType  string     `gorm:"column:action_type;type:varchar(50);not null"`
	Description string     `gorm:"column:description;type:text"`
	Metadata    []byte     `gorm:"column:metadata;type:jsonb"`
	Module      string     `gorm:"column:module;type:varchar(100)"`
	Target      string     `gorm:"column:target;type:varchar(255)"`
	Status      string     `gorm:"column:status;type:varchar(20);default:success"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
