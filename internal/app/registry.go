package app

import (
	"database/sql"

	"go-workforce/internal/activitylog"
	"go-workforce/internal/auth"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/middleware"
	"go-workforce/internal/notification"
	"go-workforce/internal/otp"
	"go-workforce/internal/profile"
	"go-workforce/internal/rbac"
	"go-workforce/internal/shared/sequence"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	activityRepo := activitylog.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	otpRepo := otp.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileRepo := profile.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	seqRepo := sequence.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Services ---
	activityWriter := activitylog.NewWriter(activityRepo, seqRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	rbacService := rbac.NewService(db, rbacRepo, rdb, activityWriter, notificationService, logger)
	otpService := otp.NewService(db, otpRepo, outboxRepo, rdb, logger)
	authService := auth.NewService(
		db, authRepo, profileRepo, rbacRepo, rbacService, otpService,
		activityWriter, notificationService, logger,
	)
	profileService := profile.NewService(profileRepo, activityWriter, notificationService, logger)
	userService := user.NewService(
		db, userRepo, authRepo, profileRepo, rbacRepo, rbacService,
		outboxRepo, activityWriter, notificationService, logger,
	)

	// --- Handlers ---
	activityHandler := activitylog.NewHandler(activityRepo)
	authHandler := auth.NewHandler(authService)
	notificationHandler := notification.NewHandler(notificationService)
	profileHandler := profile.NewHandler(profileService)
	rbacHandler := rbac.NewHandler(rbacService)
	userHandler := user.NewHandler(userService)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(middleware.ContextLogger(logger))
	{
		auth.RegisterRoutes(api, authHandler)

		protected := api.Group("", middleware.AuthMiddleware())
		profile.RegisterRoutes(api, protected, profileHandler)

		user.RegisterRoutes(api, userHandler, rbacService, rdb, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
		activitylog.RegisterRoutes(api, activityHandler, rbac.RequireAdmin(rbacService))
	}

	return nil
}
