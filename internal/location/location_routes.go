package location

import (
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, sessions middleware.SessionSource, rbacService rbac.Service) {
	r.PUT("/location",
		middleware.RequireSession(sessions),
		middleware.RBACAuthorize(rbacService, rbac.ResourceLocation, rbac.ActionUpdate),
		middleware.RateLimitByUser(1, 5),
		h.Update,
	)
}
