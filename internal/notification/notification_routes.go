package notification

import (
	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.RateLimitByUser(5, 10))
	{
		notifications.GET("", h.List)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}
