package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/config"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/farm"
	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/handler"
	"github.com/osse101/ChronoFarm_Go/internal/save"
	"github.com/osse101/ChronoFarm_Go/internal/scheduler"
	"github.com/osse101/ChronoFarm_Go/internal/server"
	"github.com/osse101/ChronoFarm_Go/internal/sse"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/timetravel"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
	"github.com/osse101/ChronoFarm_Go/internal/worker"
)

// App is the assembled application
type App struct {
	Config    *config.Config
	Store     *store.Store
	Bus       *event.Bus
	Session   *game.Session
	Hub       *sse.Hub
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Journeys  *worker.JourneyWorker
	Server    *server.Server

	closers []func()
}

// GameConfig maps the environment onto session settings
func GameConfig(cfg *config.Config) game.Config {
	return game.Config{
		GridSize:    cfg.GridSize,
		GridColumns: cfg.GridColumns,
		Farm:        farm.DefaultConfig(),
		Travel: timetravel.Config{
			Cooldown:  cfg.TravelCooldown,
			Steps:     cfg.TravelSteps,
			StepDelay: cfg.TravelStepDelay,
		},
	}
}

// Build wires every component and restores the configured save slot. On
// error everything opened so far is released.
func Build(ctx context.Context, cfg *config.Config, clk clock.Clock) (*App, error) {
	app := &App{Config: cfg}
	built := false
	defer func() {
		if !built {
			app.release()
		}
	}()

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded, "species", len(cat.AllSpecies()), "eras", len(cat.EraIDs()))

	gameCfg := GameConfig(cfg)
	app.Store, err = store.New(game.DefaultState(cat, clk.Now(), gameCfg), store.Options{
		Schema:          store.GameSchema(),
		HistoryCapacity: cfg.HistoryCapacity,
		BatchDebounce:   cfg.BatchDebounce,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildStore, err)
	}

	var deadLetters io.Closer
	app.Bus, deadLetters, err = InitializeEventSystem(cfg, event.WithClock(clk.Now))
	if err != nil {
		return nil, err
	}
	if deadLetters != nil {
		app.closers = append(app.closers, func() {
			if err := deadLetters.Close(); err != nil {
				slog.Warn(LogMsgCloseFailed, "resource", "dead-letter", "error", err)
			}
		})
	}

	backend, err := OpenSaveBackend(ctx, cfg, clk.Now)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, backend.Close)
	var ready []handler.HealthChecker
	if backend.Ready != nil {
		ready = append(ready, backend.Ready)
	}

	saves, err := save.NewService(backend, save.Options{
		Slot:     cfg.SaveSlot,
		Backups:  cfg.SaveBackups,
		Clock:    clk,
		Defaults: func() domain.GameState { return game.DefaultState(cat, clk.Now(), gameCfg) },
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildSaves, err)
	}

	app.Session, err = game.New(app.Store, app.Bus, cat, clk, utils.MathRandomizer{}, saves, gameCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildGame, err)
	}

	app.Hub = sse.NewHub()
	app.Hub.Start()
	if _, _, err = RegisterEventHandlers(EventHandlerDependencies{
		EventBus: app.Bus,
		Store:    app.Store,
		Hub:      app.Hub,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedWatchStore, err)
	}

	res, err := app.Session.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRestoreGame, err)
	}
	slog.Info(LogMsgSessionRestored, "slot", saves.Slot(), "source", res.Source, "fromVersion", res.FromVersion)

	app.Pool = worker.NewPool(cfg.WorkerCount, worker.DefaultQueueSize)
	app.Pool.Start()
	app.Scheduler = scheduler.New(app.Pool)
	app.Scheduler.Schedule(JobNameTick, cfg.TickInterval, worker.NewTickJob(app.Session))
	app.Scheduler.Schedule(JobNameAutosave, cfg.AutosaveInterval, worker.NewAutosaveJob(app.Session))

	app.Journeys = worker.NewJourneyWorker(app.Session)
	app.Server = server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Dependencies{
		Game:     app.Session,
		Journeys: app.Journeys,
		Hub:      app.Hub,
		Ready:    ready,
	})
	built = true
	return app, nil
}

// Shutdown stops every component and writes a final save
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, a.components())
}

func (a *App) components() ShutdownComponents {
	return ShutdownComponents{
		Server:    a.Server,
		Scheduler: a.Scheduler,
		Pool:      a.Pool,
		Journeys:  a.Journeys,
		Session:   a.Session,
		Hub:       a.Hub,
		Closers:   a.closers,
	}
}

// release undoes a partial Build without saving
func (a *App) release() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Pool != nil {
		a.Pool.Stop()
	}
	if a.Session != nil {
		a.Session.Close()
	}
	if a.Hub != nil {
		a.Hub.Stop()
	}
	for _, closeFn := range a.closers {
		closeFn()
	}
}
