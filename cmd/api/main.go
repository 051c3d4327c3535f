package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/handlers"
	"github.com/azadstore/storefront/internal/platform/config"
	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/platform/observability"
	"github.com/azadstore/storefront/internal/repositories/jsonfile"
	"github.com/azadstore/storefront/internal/services"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		logger.Fatal("failed to create data directory", zap.Error(err))
	}

	registry, err := jsonfile.NewRegistry(cfg.Data.CatalogFile, cfg.Data.ReviewsFile, cfg.Data.OrdersFile, cfg.Data.AdminFile)
	if err != nil {
		logger.Fatal("failed to initialise storage", zap.Error(err))
	}

	media, err := mediastore.New(cfg.Media.ImagesDir, cfg.Media.VideosDir)
	if err != nil {
		logger.Fatal("failed to initialise media store", zap.Error(err))
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Catalog: registry.Catalog(),
		Media:   media,
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	reviewService, err := services.NewReviewService(services.ReviewServiceDeps{Reviews: registry.Reviews()})
	if err != nil {
		logger.Fatal("failed to initialise review service", zap.Error(err))
	}

	orderService, err := services.NewOrderService(services.OrderServiceDeps{Orders: registry.Orders()})
	if err != nil {
		logger.Fatal("failed to initialise order service", zap.Error(err))
	}

	authService, err := services.NewAuthService(services.AuthServiceDeps{Admin: registry.AdminConfig()})
	if err != nil {
		logger.Fatal("failed to initialise auth service", zap.Error(err))
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
		),
		handlers.WithCatalogRoutes(handlers.NewCatalogHandlers(catalogService).Routes),
		handlers.WithProductRoutes(handlers.NewProductHandlers(catalogService, media).Routes),
		handlers.WithAuthRoutes(handlers.NewAuthHandlers(authService).Routes),
		handlers.WithReviewRoutes(handlers.NewReviewHandlers(reviewService).Routes),
		handlers.WithOrderRoutes(handlers.NewOrderHandlers(orderService).Routes),
		handlers.WithStaticDir("/images", cfg.Media.ImagesDir),
		handlers.WithStaticDir("/videos", cfg.Media.VideosDir),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
