package app

import (
	"go-fieldtrack/internal/attendance"
	"go-fieldtrack/internal/auth"
	"go-fieldtrack/internal/dashboard"
	"go-fieldtrack/internal/events"
	"go-fieldtrack/internal/location"
	"go-fieldtrack/internal/middleware"
	"go-fieldtrack/internal/obs"
	"go-fieldtrack/internal/rbac"
	"go-fieldtrack/internal/state"
	"go-fieldtrack/internal/task"
	"go-fieldtrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	state     *state.State
	rbac      rbac.Service
	publisher events.Publisher
	// redis may be nil; idempotency is then disabled.
	redis   *redis.Client
	metrics *obs.Metrics
}

func registerModules(router *gin.Engine, m modules) {
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L().Named("http")),
		m.metrics.Instrument(),
	)
	router.GET("/metrics", gin.WrapH(m.metrics.Handler()))

	// --- Services ---
	authService := auth.NewService(m.state, m.rbac)
	attendanceService := attendance.NewService(m.state, m.publisher)
	taskService := task.NewService(m.state, m.publisher)
	locationService := location.NewService(m.state)
	dashboardService := dashboard.NewService(m.state)
	userService := user.NewService(m.state)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	taskHandler := task.NewHandler(taskService)
	locationHandler := location.NewHandler(locationService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, m.state, m.rbac)
		attendance.RegisterRoutes(api, attendanceHandler, m.state, m.rbac)
		task.RegisterRoutes(api, taskHandler, m.state, m.rbac, m.redis)
		location.RegisterRoutes(api, locationHandler, m.state, m.rbac)
		dashboard.RegisterRoutes(api, dashboardHandler, m.state, m.rbac)
		user.RegisterRoutes(api, userHandler, m.state, m.rbac)
	}
}
