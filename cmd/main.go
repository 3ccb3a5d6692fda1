package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"qrdine/internal/caching"
	"qrdine/internal/config"
	"qrdine/internal/handlers"
	"qrdine/internal/jobs/background"
	"qrdine/internal/logger"
	"qrdine/internal/middleware"
	"qrdine/internal/repositories"
	"qrdine/internal/services"
	"qrdine/pkg/database"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog := logger.New("qrdine")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	applied, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if len(applied) > 0 {
		appLog.Info("migrate", "", "applied migrations", slog.Any("files", applied))
	}
	store := repositories.NewStore(pool)

	// Redis backs the per-table order limit and the QR image cache
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Orders.RateLimitPerMinute, appLog)
	defer cacheSvc.Close()

	// MinIO holds menu images; a broken storage endpoint only disables uploads
	minioSvc, err := services.NewMinioService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		log.Fatalf("Failed to create MinIO client: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.Storage.Bucket); err != nil {
		appLog.Warn("storage_init", "", "could not ensure image bucket", slog.String("bucket", cfg.Storage.Bucket), slog.String("error", err.Error()))
	}

	// Staff tokens: JWKS when configured, shared secret otherwise
	authCfg := middleware.AuthConfig{Secret: cfg.Auth.JWTSecret}
	if cfg.Auth.JWKSURL != "" {
		jwks, err := middleware.LoadJWKS(cfg.Auth.JWKSURL, appLog)
		if err != nil {
			log.Fatalf("Failed to load JWKS: %v", err)
		}
		defer jwks.EndBackground()
		authCfg.KeyFunc = jwks.Keyfunc
	}

	// Services
	orderSvc := services.NewOrderService(store, cacheSvc, appLog)
	reorderSvc := services.NewReorderService(store, appLog)
	menuSvc := services.NewMenuService(store)
	tableSvc := services.NewTableService(store, cacheSvc, cfg.Server.PublicMenuURL, appLog)
	imageSvc := services.NewImageService(minioSvc, cfg.Storage.Bucket, cfg.Storage.PublicURL(), appLog)

	scheduler, err := background.NewJobScheduler(store.Orders(), cfg.Jobs.BacklogInterval, appLog)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(appLog))
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.BodyLimit("6M"))

	router := &handlers.Router{
		Health:     handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, cfg.Storage.Bucket, cfg.Server.Version),
		Orders:     handlers.NewOrderHandlers(orderSvc, tableSvc, appLog),
		Categories: handlers.NewCategoryHandlers(menuSvc, reorderSvc, appLog),
		Tables:     handlers.NewTableHandlers(tableSvc, menuSvc, appLog),
		Images:     handlers.NewImageHandlers(imageSvc, appLog),
		Auth:       middleware.JWTAuth(authCfg),
		RBAC:       middleware.NewRBACMiddleware(appLog),
		Version:    middleware.NewVersionMiddleware(cfg.Server.Version),
	}
	router.Register(e)

	// Start server
	go func() {
		appLog.Info("server_start", "", fmt.Sprintf("qrdine v%s starting on port %d", cfg.Server.Version, cfg.Server.Port))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("server_stop", "", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server_stop", "", "http shutdown failed", err)
	}
	if err := scheduler.Stop(); err != nil {
		appLog.Error("server_stop", "", "scheduler shutdown failed", err)
	}
}
