// Package app wires the process: config, observability, database, event
// bus, the shared watermill router, the feature modules, and the HTTP read
// API.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/jbcre8iv/MotoSense-sub001/api"
	"github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard"
	"github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace"
	"github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring"
	"github.com/jbcre8iv/MotoSense-sub001/config"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/notifications"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// App is the composed process.
type App struct {
	Config            *config.Config
	Observability     *observability.Observability
	DB                *bun.DB
	EventBus          eventbus.EventBus
	Router            *message.Router
	ScoringModule     *scoring.Module
	LeaderboardModule *leaderboard.Module
	LiveRaceModule    *liverace.Module
	APIServer         *http.Server

	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// Initialize builds every component and wires the modules together.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.logger = obs.GetLogger()

	app.logger.InfoContext(ctx, "App Initialize started")

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.DB = bun.NewDB(sqldb, pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = eventBus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(app.logger))
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	app.Router = router

	notifier := notifications.NewEventBusNotifier(eventBus, app.logger, notifications.Config{
		PushToken:     cfg.Notifications.PushToken,
		RatePerSecond: cfg.Notifications.RatePerSecond,
		Burst:         cfg.Notifications.Burst,
	})

	// One metrics instance shared by every module; registering the vectors
	// twice on the same registry would panic.
	operationMetrics := observability.NewPrometheusMetrics(obs.GetRegistry())

	scoringModule, err := scoring.NewScoringModule(ctx, cfg, obs, app.DB, eventBus, router, notifier, operationMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize scoring module: %w", err)
	}
	app.ScoringModule = scoringModule

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs, app.DB, eventBus, router, operationMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.LeaderboardModule = leaderboardModule

	liveRaceModule, err := liverace.NewLiveRaceModule(ctx, cfg, obs, app.DB, eventBus, router, operationMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize liverace module: %w", err)
	}
	app.LiveRaceModule = liveRaceModule

	apiServer := api.NewServer(app.logger, leaderboardModule.LeaderboardService, liveRaceModule.LiveRaceService)
	app.APIServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           apiServer.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	app.logger.InfoContext(ctx, "App Initialize finished")
	return nil
}

// Run starts the router, the modules, the metrics listener, and the read
// API, then blocks until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelFunc = cancel
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Observability.ServeMetrics(ctx); err != nil {
			app.logger.Error("Metrics listener stopped", attr.Error(err))
		}
	}()

	wg.Add(1)
	go app.ScoringModule.Run(ctx, &wg)
	wg.Add(1)
	go app.LeaderboardModule.Run(ctx, &wg)
	wg.Add(1)
	go app.LiveRaceModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.logger.Info("Starting read API", attr.String("addr", app.APIServer.Addr))
		if err := app.APIServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Read API stopped", attr.Error(err))
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil {
			app.logger.Error("Watermill router stopped", attr.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	app.logger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.APIServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Read API shutdown failed", attr.Error(err))
	}

	wg.Wait()
	return nil
}

// Close releases every resource in reverse wiring order.
func (app *App) Close() {
	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	if app.ScoringModule != nil {
		if err := app.ScoringModule.Close(); err != nil {
			app.logger.Error("Error closing scoring module", attr.Error(err))
		}
	}
	if app.LeaderboardModule != nil {
		if err := app.LeaderboardModule.Close(); err != nil {
			app.logger.Error("Error closing leaderboard module", attr.Error(err))
		}
	}
	if app.LiveRaceModule != nil {
		if err := app.LiveRaceModule.Close(); err != nil {
			app.logger.Error("Error closing liverace module", attr.Error(err))
		}
	}

	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			app.logger.Error("Error closing watermill router", attr.Error(err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			app.logger.Error("Error closing event bus", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.logger.Error("Error closing database", attr.Error(err))
		}
	}
}
