package attendance

import (
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, sessions middleware.SessionSource, rbacService rbac.Service) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.RequireSession(sessions))
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetAll)
		attendance.GET("/today", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.Today)
		attendance.POST("/punch-in", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.PunchIn)
		attendance.POST("/punch-out", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.PunchOut)
	}
}
