package auth

import (
	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		authGroup.POST("/refresh", handler.RefreshToken)
		authGroup.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)

		// OTP surface; dibatasi per-IP karena belum ada identity.
		authGroup.POST("/check-user", middleware.RateLimitByIP(0.5, 5), handler.CheckUser)
		authGroup.POST("/send-otp", middleware.RateLimitByIP(0.1, 3), handler.SendOtp)
		authGroup.POST("/verify-otp", middleware.RateLimitByIP(0.5, 5), handler.VerifyOtp)
		authGroup.POST("/verify-otp-forgot", middleware.RateLimitByIP(0.5, 5), handler.VerifyOtpForgot)
		authGroup.POST("/reset-password-otp", middleware.RateLimitByIP(0.1, 3), handler.ResetPasswordOtp)

		emailChange := authGroup.Group("/email-change", middleware.AuthMiddleware())
		{
			emailChange.POST("/start", handler.StartEmailChange)
			emailChange.POST("/verify-current", handler.VerifyCurrentEmail)
			emailChange.POST("/verify-new", handler.ConfirmEmailChange)
		}
	}
}
