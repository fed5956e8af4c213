package events

import "time"

const UserLifecycleTopic = "workforce.user.lifecycle.v1"

const (
	UserEventSignedUp    = "user.signed_up"
	UserEventDeactivated = "user.deactivated"
	UserEventDeleted     = "user.deleted"
	UserEventRoleChanged = "user.role_changed"
)

type UserLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
