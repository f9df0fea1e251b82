package dashboard

import (
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, sessions middleware.SessionSource, rbacService rbac.Service) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireSession(sessions))
	{
		admin.GET("/overview", middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead), h.Overview)
		admin.GET("/map", middleware.RBACAuthorize(rbacService, rbac.ResourceMap, rbac.ActionRead), h.Map)
		admin.GET("/attendance/export", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionExport), h.ExportAttendance)
	}

	r.GET("/app/home",
		middleware.RequireSession(sessions),
		middleware.RBACAuthorize(rbacService, rbac.ResourceHome, rbac.ActionRead),
		h.Home,
	)
	r.GET("/geo/options",
		middleware.RequireSession(sessions),
		middleware.RBACAuthorize(rbacService, rbac.ResourceGeo, rbac.ActionRead),
		h.GeoOptions,
	)
}
