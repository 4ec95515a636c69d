package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-router/internal/api/http"
	"github.com/spec-kit/ticket-router/internal/api/http/handlers"
	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/events"
	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/resolver"
	"github.com/spec-kit/ticket-router/internal/schedule"
	"github.com/spec-kit/ticket-router/internal/service"
	"github.com/spec-kit/ticket-router/internal/store"
	"github.com/spec-kit/ticket-router/internal/syncro"
	"github.com/spec-kit/ticket-router/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	results := store.NewFileResultsStore(cfg.Store.ResultsPath)
	routingService := service.NewRoutingService(service.RoutingDependencies{
		Loader:     schedule.NewLoader(cfg.Roster.Path),
		Source:     syncro.NewClient(cfg.Syncro, logger),
		Resolver:   resolver.NewResolver(nil),
		Results:    results,
		Ledger:     store.NewFileLedger(cfg.Store.LedgerPath),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	poller := worker.NewPoller(routingService, cfg.App.PollInterval(), logger)
	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		poller.Run(ctx)
	}()

	var app *fiber.App
	if cfg.Status.Enabled {
		app = fiber.New()
		httptransport.RegisterMiddlewares(app, logger)

		healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Roster.Path, cfg.Store.ResultsPath)
		statusHandler := handlers.NewStatusHandler(metrics, routingService, results)

		httptransport.RegisterRoutes(app, httptransport.RouteConfig{
			Health: healthHandler,
			Status: statusHandler,
		})

		go func() {
			if err := app.Listen(cfg.Status.Addr()); err != nil {
				logger.Error("status server listen", zap.Error(err))
			}
		}()
	}

	waitForShutdown(logger)
	cancel()
	<-pollerDone

	if app != nil {
		_ = app.Shutdown()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
