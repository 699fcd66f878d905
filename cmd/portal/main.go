package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	httptransport "github.com/spec-kit/staff-portal/internal/api/http"
	"github.com/spec-kit/staff-portal/internal/api/http/handlers"
	"github.com/spec-kit/staff-portal/internal/config"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/observability"
	"github.com/spec-kit/staff-portal/internal/persistence"
	"github.com/spec-kit/staff-portal/internal/scheduler"
	"github.com/spec-kit/staff-portal/internal/service"
	"github.com/spec-kit/staff-portal/internal/session"
	"github.com/spec-kit/staff-portal/internal/storage"
	"github.com/spec-kit/staff-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStorage(ctx, cfg, logger)
	defer closeStore()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	sessions := session.NewManager(store, cfg.Session.IdleTimeout(), logger)
	janitorDone := worker.StartSessionJanitor(ctx, sessions, cfg.Session.IdleTimeout()/2, logger)

	api := apiclient.New(apiclient.Config{BaseURL: cfg.Backend.APIURL, Timeout: cfg.Backend.Timeout()})
	screens := handlers.Screens{
		API:               api,
		Scheduler:         scheduler.NewTimer(),
		Events:            dispatcher,
		Logger:            logger,
		RedirectDelay:     cfg.Flows.RedirectDelay(),
		RemoteDepartments: cfg.Flows.RemoteDepartments,
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, metrics),
		Landing:  handlers.NewLandingHandler(logger),
		Register: handlers.NewRegisterHandler(screens),
		Login:    handlers.NewLoginHandler(screens),
		Verify:   handlers.NewVerifyHandler(screens),
		Session:  session.Middleware(sessions, session.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}),
	})

	go func() {
		logger.Info("portal listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("backend", api.BaseURL()),
			zap.String("storage", cfg.Storage.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	<-janitorDone
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func()) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		return storage.NewRedis(client, cfg.Storage.KeyPrefix), func() { _ = client.Close() }
	case config.StoragePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		return storage.NewPostgres(pg.Pool), pg.Close
	default:
		logger.Warn("using in-memory client storage; stored logins are lost on restart")
		return storage.NewMemory(), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
