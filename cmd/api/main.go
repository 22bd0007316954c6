package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/jwt-issuer/internal/api/http"
	"github.com/spec-kit/jwt-issuer/internal/api/http/handlers"
	"github.com/spec-kit/jwt-issuer/internal/config"
	"github.com/spec-kit/jwt-issuer/internal/events"
	"github.com/spec-kit/jwt-issuer/internal/issuer"
	"github.com/spec-kit/jwt-issuer/internal/observability"
	"github.com/spec-kit/jwt-issuer/internal/service"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.ShowVersion {
		fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		return
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	metrics.SubscribeTo(dispatcher)

	issuerService := service.NewIssuerService(cfg.Issuer, service.IssuerDependencies{
		Validator:  issuer.NewValidator(logger),
		Signer:     issuer.NewSigner(logger),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := httptransport.NewApp(cfg.App)
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout(),
		TrackingPrefix: cfg.Issuer.TrackingPrefix,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(config.NewRuntimeInfo(cfg.App, startedAt)),
		Issuer:  handlers.NewIssuerHandler(issuerService),
		Metrics: handlers.NewMetricsHandler(metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	fmt.Printf("JWT Issuer Service started on port: %s\n", cfg.App.Port)
	logger.Info("jwt issuer started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
