package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-workforce/internal/events"
	"go-workforce/internal/otp"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Sender dipenuhi oleh mailer.Client; dipisah supaya bisa di-stub di test.
type Sender interface {
	Send(to, subject, body string) error
}

func ConsumeMailRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	sender Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.mail")
	log.Info("mail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("mail consumer stopped")
				return
			}
			log.Error("fetch mail message failed", zap.Error(err))
			continue
		}

		to, subject, body, err := composeMail(msg.Value, eventType(msg))
		if err != nil {
			// Payload rusak tidak akan membaik di retry, commit dan lanjut.
			log.Error("decode mail event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(to, subject, body); err != nil {
			log.Error("send mail failed",
				zap.String("event_type", eventType(msg)),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit mail message failed", zap.Error(err))
			continue
		}

		log.Info("mail sent", zap.String("event_type", eventType(msg)))
	}
}

func eventType(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

func composeMail(payload []byte, evType string) (to, subject, body string, err error) {
	switch evType {
	case events.MailEventOtpRequested:
		var ev events.OtpMailEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return "", "", "", err
		}
		subject := "Your verification code"
		if ev.Flow == otp.FlowPasswordReset {
			subject = "Your password reset code"
		}
		body := fmt.Sprintf(
			"Your verification code is %s. It expires at %s.",
			ev.Code, ev.ExpiresAt.Format("15:04 MST"),
		)
		return ev.Email, subject, body, nil

	case events.MailEventUserInvited:
		var ev events.InviteMailEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return "", "", "", err
		}
		body := fmt.Sprintf(
			"You have been invited to join as %s. Sign up with this email address to get started.",
			ev.RoleLabel,
		)
		return ev.Email, "You have been invited", body, nil

	case events.MailEventNotification:
		var ev events.NotificationMailEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return "", "", "", err
		}
		return ev.Email, ev.Subject, ev.Body, nil

	default:
		return "", "", "", fmt.Errorf("unknown mail event type: %q", evType)
	}
}
