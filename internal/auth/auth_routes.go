package auth

import (
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, sessions middleware.SessionSource, rbacService rbac.Service) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me",
			middleware.RequireSession(sessions),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAuth, rbac.ActionRead),
			handler.Me,
		)
	}
}
