package activitylog

import (
	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// requireAdmin dilewatkan dari registry; paket ini tidak boleh
// mengimpor rbac karena rbac memakai Writer dari sini.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, requireAdmin gin.HandlerFunc) {
	logs := rg.Group("/activity-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("",
			middleware.RateLimitByUser(3, 10),
			requireAdmin,
			h.List,
		)
	}
}
