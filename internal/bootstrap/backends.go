package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/ChronoFarm_Go/internal/config"
	"github.com/osse101/ChronoFarm_Go/internal/database"
	"github.com/osse101/ChronoFarm_Go/internal/handler"
	"github.com/osse101/ChronoFarm_Go/internal/save"
	"github.com/osse101/ChronoFarm_Go/internal/save/filestore"
	"github.com/osse101/ChronoFarm_Go/internal/save/postgres"
	"github.com/osse101/ChronoFarm_Go/internal/save/redisstore"
)

// SaveBackend is an opened save backend with its readiness check and cleanup
type SaveBackend struct {
	save.Backend
	// Ready is nil when the backend has nothing remote to check
	Ready handler.HealthChecker
	Close func()
}

// OpenSaveBackend connects the backend selected by SAVE_BACKEND. The
// postgres backend migrates its schema before use.
func OpenSaveBackend(ctx context.Context, cfg *config.Config, now func() time.Time) (*SaveBackend, error) {
	var sb *SaveBackend
	switch cfg.SaveBackend {
	case config.SaveBackendFile:
		fs, err := filestore.New(cfg.SaveDir, now)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSaveDir, err)
		}
		sb = &SaveBackend{Backend: fs, Close: func() {}}

	case config.SaveBackendPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		sb = &SaveBackend{
			Backend: postgres.New(pool),
			Ready:   handler.HealthCheckFunc(pool.Ping),
			Close:   pool.Close,
		}

	case config.SaveBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		if err := ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedPingRedis, err)
		}
		sb = &SaveBackend{
			Backend: redisstore.New(client, redisstore.DefaultPrefix, now),
			Ready:   handler.HealthCheckFunc(ping),
			Close: func() {
				if err := client.Close(); err != nil {
					slog.Warn(LogMsgCloseFailed, "resource", "redis", "error", err)
				}
			},
		}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.SaveBackend)
	}

	slog.Info(LogMsgSaveBackendReady, "backend", sb.Name(), "slot", cfg.SaveSlot)
	return sb, nil
}
