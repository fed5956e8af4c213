package otp

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"math/big"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	otperrors "go-workforce/internal/otp/errors"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cooldownKeyPrefix = "otp:cooldown:"

//go:generate mockgen -source=otp_service.go -destination=mock/otp_service_mock.go -package=mock
type Service interface {
	// WithTx mengikat service ke transaksi luar; Verify di dalam flow
	// compound (signup, ganti email) ikut commit/rollback caller.
	WithTx(tx *sql.Tx) Service

	// Request menerbitkan kode baru dan menitipkan mail event ke outbox.
	Request(ctx context.Context, email, flow string) error

	// Verify mencocokkan kode terhadap row terbaru untuk email tsb; flow
	// yang diharapkan ikut dicocokkan supaya kode signup tidak bisa dipakai
	// untuk reset password atau sebaliknya.
	Verify(ctx context.Context, email, code, flow string) error

	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	cache  *redis.Client
	logger *zap.Logger
	tx     *sql.Tx
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	cache *redis.Client,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		cache:  cache,
		logger: logger.Named("otp"),
	}
}

func (s *service) WithTx(tx *sql.Tx) Service {
	clone := *s
	clone.tx = tx
	return &clone
}

func (s *service) Request(ctx context.Context, email, flow string) error {
	if err := s.checkCooldown(ctx, email); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	row := &OtpVerification{
		ID:        uuid.New(),
		Email:     email,
		OtpCode:   code,
		Flow:      flow,
		ExpiresAt: now.Add(CodeTTL),
	}

	payload, err := json.Marshal(events.OtpMailEvent{
		EventType: events.MailEventOtpRequested,
		Email:     email,
		Code:      code,
		Flow:      flow,
		ExpiresAt: row.ExpiresAt,
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "otp_verification",
		AggregateID:   row.ID.String(),
		EventType:     events.MailEventOtpRequested,
		Topic:         events.MailTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	// Row kode dan mail event harus lahir di transaksi yang sama.
	if s.tx != nil {
		if err := s.repo.WithTx(s.tx).CreateVerification(ctx, row); err != nil {
			return err
		}
		return s.outbox.WithTx(s.tx).Create(ctx, event)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateVerification(ctx, row); err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Verify(ctx context.Context, email, code, flow string) error {
	repo := s.repo
	if s.tx != nil {
		repo = repo.WithTx(s.tx)
	}

	row, err := repo.FindLatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return otperrors.ErrOtpNotFound
		}
		return err
	}

	// Row dari flow lain dianggap tidak ada; kode yang diterbitkan untuk
	// signup tidak boleh lolos di verifikasi ganti email.
	if row.Flow != flow {
		return otperrors.ErrOtpNotFound
	}

	// Verifikasi ulang dibiarkan sukses HANYA untuk kode yang sama; row
	// verified bukan tiket bebas untuk kode sembarang.
	if row.Verified {
		if code == row.OtpCode {
			return nil
		}
		return otperrors.ErrOtpMismatch(MaxAttempts - row.Attempts)
	}

	now := time.Now().UTC()
	if row.Expired(now) {
		// Expired menang atas segalanya, termasuk kode yang benar.
		return otperrors.ErrOtpExpired
	}
	if row.Locked() {
		return otperrors.ErrOtpLocked
	}

	if code != row.OtpCode {
		if err := repo.IncrementAttempts(ctx, row.ID.String()); err != nil {
			return err
		}
		return otperrors.ErrOtpMismatch(MaxAttempts - row.Attempts - 1)
	}

	return repo.MarkVerified(ctx, row.ID.String())
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("expired verification codes purged", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func (s *service) checkCooldown(ctx context.Context, email string) error {
	if s.cache == nil {
		return nil
	}
	ok, err := s.cache.SetNX(ctx, cooldownKeyPrefix+email, "1", ResendCooldown).Result()
	if err != nil {
		// Redis mati bukan alasan menahan user mendapatkan kode.
		s.logger.Warn("otp cooldown check failed", zap.Error(err))
		return nil
	}
	if !ok {
		return otperrors.ErrOtpCooldown
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	digits := n.Int64()
	code := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		code[i] = byte('0' + digits%10)
		digits /= 10
	}
	return string(code), nil
}
