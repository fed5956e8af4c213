package consumer

import (
	"encoding/json"
	"testing"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/otp"

	"github.com/stretchr/testify/assert"
)

func TestComposeMail_OtpRequested(t *testing.T) {
	payload, _ := json.Marshal(events.OtpMailEvent{
		EventType: events.MailEventOtpRequested,
		Email:     "budi@example.com",
		Code:      "123456",
		Flow:      otp.FlowSignup,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})

	to, subject, body, err := composeMail(payload, events.MailEventOtpRequested)

	assert.NoError(t, err)
	assert.Equal(t, "budi@example.com", to)
	assert.Equal(t, "Your verification code", subject)
	assert.Contains(t, body, "123456")
}

func TestComposeMail_PasswordResetSubject(t *testing.T) {
	payload, _ := json.Marshal(events.OtpMailEvent{
		Email: "budi@example.com",
		Code:  "654321",
		Flow:  otp.FlowPasswordReset,
	})

	_, subject, _, err := composeMail(payload, events.MailEventOtpRequested)

	assert.NoError(t, err)
	assert.Equal(t, "Your password reset code", subject)
}

func TestComposeMail_UserInvited(t *testing.T) {
	payload, _ := json.Marshal(events.InviteMailEvent{
		Email:     "dewi@example.com",
		RoleLabel: "hr",
	})

	to, subject, body, err := composeMail(payload, events.MailEventUserInvited)

	assert.NoError(t, err)
	assert.Equal(t, "dewi@example.com", to)
	assert.Equal(t, "You have been invited", subject)
	assert.Contains(t, body, "hr")
}

func TestComposeMail_UnknownEventType(t *testing.T) {
	_, _, _, err := composeMail([]byte(`{}`), "payslip.generated")
	assert.Error(t, err)
}
