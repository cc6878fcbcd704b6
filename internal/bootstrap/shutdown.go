package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/scheduler"
	"github.com/osse101/ChronoFarm_Go/internal/server"
	"github.com/osse101/ChronoFarm_Go/internal/sse"
	"github.com/osse101/ChronoFarm_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Journeys  *worker.JourneyWorker
	Session   *game.Session
	Hub       *sse.Hub
	// Closers run last, in order
	Closers []func()
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduled jobs and the journey in flight
// 3. Final save of the session, then its listeners
// 4. Event stream and backend connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdwn, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Journeys != nil {
		if err := c.Journeys.Shutdown(ctx); err != nil {
			slog.Error(LogMsgJourneyShutdownFail, "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.Session != nil {
		if _, err := c.Session.Save(ctx); err != nil {
			if errors.Is(err, game.ErrPersistenceDisabled) {
				slog.Info(LogMsgFinalSaveSkipped)
			} else {
				slog.Error(LogMsgFinalSaveFailed, "error", err)
			}
		}
		c.Session.Close()
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}
	for _, closeFn := range c.Closers {
		closeFn()
	}

	slog.Info(LogMsgServerStopped)
}
