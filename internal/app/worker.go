package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/messaging/kafka/producer"
	"go-workforce/internal/otp"
	"go-workforce/internal/shared/connection"

	"go.uber.org/zap"
)

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	otpService := otp.NewService(sqlDB, otp.NewRepository(gormDB), outboxRepo, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	// Housekeeping: kode OTP kedaluwarsa dan outbox sent dibersihkan berkala.
	go purgeExpiredOtps(ctx, otpService, logger, time.Hour)
	go purgeSentOutbox(ctx, outboxRepo, logger, time.Hour, 7*24*time.Hour)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func purgeSentOutbox(
	ctx context.Context,
	outboxRepo kafka.OutboxRepository,
	logger *zap.Logger,
	interval, retention time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := outboxRepo.PurgeSent(ctx, retention)
			if err != nil {
				logger.Error("purge sent outbox rows failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("sent outbox rows purged", zap.Int64("count", purged))
			}
		}
	}
}

func purgeExpiredOtps(ctx context.Context, otpService otp.Service, logger *zap.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := otpService.PurgeExpired(ctx)
			if err != nil {
				logger.Error("purge expired otps failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("expired otps purged", zap.Int64("count", purged))
			}
		}
	}
}
