package rbac

import (
	"github.com/gin-gonic/gin"

	"go-workforce/internal/middleware"
)

// RegisterRoutes memasang route RBAC. Semua butuh token; manajemen
// role/permission khusus super_admin, assignment boleh admin.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, service Service) {
	rbacGroup := rg.Group("/rbac", middleware.AuthMiddleware())
	{
		rbacGroup.GET("/me", h.Me)
		rbacGroup.POST("/enforce", RequireAdmin(service), h.Enforce)

		rbacGroup.GET("/roles", RequireAdmin(service), h.ListRoles)
		rbacGroup.POST("/roles", RequireRole(service, string(RoleSuperAdmin)), h.CreateRole)
		rbacGroup.PUT("/roles/:role", RequireRole(service, string(RoleSuperAdmin)), h.UpdateRole)
		rbacGroup.DELETE("/roles/:role", RequireRole(service, string(RoleSuperAdmin)), h.DeleteRole)

		rbacGroup.GET("/permissions", RequireAdmin(service), h.ListPermissions)
		rbacGroup.GET("/roles/:role/permissions", RequireAdmin(service), h.ListRolePermissions)
		rbacGroup.PUT("/roles/:role/permissions", RequireRole(service, string(RoleSuperAdmin)), h.UpdateRolePermissions)

		rbacGroup.POST("/assignments", RequireAdmin(service), h.AssignRole)
	}
}
