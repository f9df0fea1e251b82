package app

import (
	"context"
	"fmt"

	"go-fieldtrack/internal/bootstrap"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/config"
	"go-fieldtrack/internal/events"
	"go-fieldtrack/internal/messaging/kafka/producer"
	"go-fieldtrack/internal/obs"
	"go-fieldtrack/internal/rbac"
	"go-fieldtrack/internal/rbac/infra"
	"go-fieldtrack/internal/shared/connection"
	"go-fieldtrack/internal/state"
	"go-fieldtrack/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// BuildApp connects the infrastructure selected by cfg, loads the state and
// registers every route on router. The returned closers release what was
// opened and should run after the HTTP server stops.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) ([]bootstrap.Closer, error) {
	logger := zap.L().Named("app")

	var closers []bootstrap.Closer
	fail := func(err error) ([]bootstrap.Closer, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	metrics := obs.NewMetrics()
	metrics.SetBuildInfo(Version, cfg.Env)

	// 1. Setup Infrastructure
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		client, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries, logger)
		if err != nil {
			return fail(err)
		}
		rdb = client
		closers = append(closers, rdb.Close)
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	snapshotStore, closeStore, err := openStore(ctx, cfg, rdb, logger)
	if err != nil {
		return fail(err)
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	st, err := state.Load(ctx, snapshotStore, clock.New(cfg.Location),
		state.WithLogger(zap.L().Named("state")),
		state.WithRecorder(metrics),
	)
	if err != nil {
		return fail(fmt.Errorf("load state: %w", err))
	}

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return fail(fmt.Errorf("build enforcer: %w", err))
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return fail(fmt.Errorf("load policies: %w", err))
	}

	publisher := events.NewNoopPublisher()
	if cfg.KafkaBroker != "" {
		writer := connection.NewKafkaWriter(cfg.KafkaBroker, logger)
		publisher = producer.NewPublisher(writer)
		closers = append(closers, writer.Close)
		logger.Info("publishing lifecycle events", zap.String("broker", cfg.KafkaBroker))
	}

	// 2. Register Modules & Routes
	registerModules(router, modules{
		state:     st,
		rbac:      rbacService,
		publisher: publisher,
		redis:     rdb,
		metrics:   metrics,
	})

	// Close in reverse order of opening.
	for i, j := 0, len(closers)-1; i < j; i, j = i+1, j-1 {
		closers[i], closers[j] = closers[j], closers[i]
	}
	return closers, nil
}

func openStore(ctx context.Context, cfg config.Config, rdb *redis.Client, logger *zap.Logger) (store.Store, bootstrap.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using the in-memory store, state is lost on restart")
		return store.NewMemoryStore(cfg.SnapshotKey), nil, nil

	case config.DriverRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("redis store selected without REDIS_ADDR")
		}
		return store.NewRedisStore(rdb, cfg.SnapshotKey), nil, nil

	default:
		dialector, err := connection.Dialector(cfg)
		if err != nil {
			return nil, nil, err
		}
		db, err := connection.ConnectGORMWithRetry(dialector, cfg.ConnectRetries, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate snapshot table: %w", err)
		}
		logger.Info("database connection established", zap.String("driver", cfg.StoreDriver))
		return store.NewGormStore(db, cfg.SnapshotKey), sqlDB.Close, nil
	}
}
