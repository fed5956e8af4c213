package profile

import "github.com/gin-gonic/gin"

// RegisterRoutes: /profile butuh auth; forgot-email publik karena dipakai
// justru saat user tidak bisa login.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	public.POST("/auth/forgot-email", h.ForgotEmail)

	profileGroup := protected.Group("/profile")
	{
		profileGroup.GET("/me", h.Me)
		profileGroup.PUT("/me", h.Update)
	}
}
