package user

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.RequirePermission(rbacService, "users", "view"),
			handler.List,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			rbac.RequirePermission(rbacService, "users", "create"),
			handler.Create,
		)

		// Kontrak lama: endpoint POST body-based, balasan selalu 200.
		users.POST("/delete",
			middleware.RateLimitByUser(0.5, 2),
			rbac.RequirePermission(rbacService, "users", "delete"),
			handler.Delete,
		)
		users.POST("/update-email",
			middleware.RateLimitByUser(0.5, 2),
			rbac.RequirePermission(rbacService, "users", "update"),
			handler.UpdateEmail,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			rbac.RequirePermission(rbacService, "users", "update"),
			handler.ToggleStatus,
		)

		invitations := users.Group("/invitations")
		{
			invitations.GET("",
				middleware.RateLimitByUser(3, 10),
				rbac.RequirePermission(rbacService, "users", "view"),
				handler.ListInvitations,
			)
			invitations.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(rdb),
				rbac.RequirePermission(rbacService, "users", "invite"),
				handler.Invite,
			)
			invitations.DELETE("/:id",
				middleware.RateLimitByUser(0.5, 2),
				rbac.RequirePermission(rbacService, "users", "invite"),
				handler.RevokeInvitation,
			)
		}
	}
}
