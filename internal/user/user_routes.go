package user

import (
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, sessions middleware.SessionSource, rbacService rbac.Service) {
	users := r.Group("/users")
	users.Use(
		middleware.RequireSession(sessions),
		middleware.RBACAuthorize(rbacService, rbac.ResourceUsers, rbac.ActionRead),
	)
	{
		users.GET("", h.GetAll)
		users.GET("/:id", h.GetByID)
	}
}
