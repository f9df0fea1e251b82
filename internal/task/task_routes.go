package task

import (
	"time"

	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, sessions middleware.SessionSource, rbacService rbac.Service, rdb *redis.Client) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireSession(sessions))
	{
		tasks.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTasks, rbac.ActionRead), h.GetAll)
		tasks.GET("/mine", middleware.RBACAuthorize(rbacService, rbac.ResourceTasks, rbac.ActionRead), h.Mine)
		tasks.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTasks, rbac.ActionCreate),
			middleware.Idempotency(rdb, 24*time.Hour),
			h.Assign,
		)
		tasks.POST("/:id/complete", middleware.RBACAuthorize(rbacService, rbac.ResourceTasks, rbac.ActionComplete), h.Complete)
	}
}
