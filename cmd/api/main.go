package main

import (
	"context"

	"go-fieldtrack/internal/app"
	"go-fieldtrack/internal/bootstrap"
	"go-fieldtrack/internal/config"
	"go-fieldtrack/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	newLogger := zap.NewDevelopment
	if cfg.IsProduction() {
		newLogger = zap.NewProduction
		gin.SetMode(gin.ReleaseMode)
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.UseJSONFieldNames()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	closers, err := app.BuildApp(context.Background(), r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()
	if err := bootstrap.StartHTTPServer(r, bootstrap.DefaultServerConfig(cfg.Port), auditLogger, closers...); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
