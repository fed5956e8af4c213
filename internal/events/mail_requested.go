package events

import "time"

const MailTopic = "workforce.mail.v1"

const (
	MailEventOtpRequested = "otp.requested"
	MailEventUserInvited  = "user.invited"
	MailEventNotification = "notification.created"
)

type OtpMailEvent struct {
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Flow      string    `json:"flow"`
	ExpiresAt time.Time `json:"expires_at"`
}

type InviteMailEvent struct {
	EventType  string    `json:"event_type"`
	Email      string    `json:"email"`
	InvitedBy  string    `json:"invited_by"`
	RoleLabel  string    `json:"role_label"`
	OccurredAt time.Time `json:"occurred_at"`
}

type NotificationMailEvent struct {
	EventType string `json:"event_type"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
