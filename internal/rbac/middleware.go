package rbac

import (
	"net/http"

	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
)

func resolveFromContext(c *gin.Context, service Service) (*Access, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
		c.Abort()
		return nil, false
	}

	access, err := service.ResolveAccess(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		c.Abort()
		return nil, false
	}
	return access, true
}

// RequirePermission menolak request yang tidak punya pair {module, action}.
func RequirePermission(service Service, module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, ok := resolveFromContext(c, service)
		if !ok {
			return
		}

		if !access.HasPermission(module, action) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": module + ":" + action},
			)
			c.Abort()
			return
		}

		c.Set("access", access)
		c.Next()
	}
}

// RequireRole menolak request yang tidak memegang salah satu role kandidat.
func RequireRole(service Service, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, ok := resolveFromContext(c, service)
		if !ok {
			return
		}

		if !access.HasRole(roles...) && !access.AllowAll {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		c.Set("access", access)
		c.Next()
	}
}

// RequireAdmin adalah gula untuk RequireRole(super_admin, admin).
func RequireAdmin(service Service) gin.HandlerFunc {
	return RequireRole(service, string(RoleSuperAdmin), string(RoleAdmin))
}
