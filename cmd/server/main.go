package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hanulpark/portal/config"
	"github.com/hanulpark/portal/internal/api"
	"github.com/hanulpark/portal/internal/api/handler"
	"github.com/hanulpark/portal/internal/repository"
	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/internal/storage"
	"github.com/hanulpark/portal/pkg/database"
	"github.com/hanulpark/portal/pkg/logger"
	"github.com/hanulpark/portal/pkg/tracing"
)

// @title Memorial Park Portal API
// @version 1.0
// @description Visitor portal for photo slots, deceased records and the guestboard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Fatal("init tracing", zap.Error(err))
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	var store *storage.DiskStore
	if cfg.Upload.Storage == service.StorageDisk {
		store, err = storage.NewDiskStore(cfg.Upload.Dir)
		if err != nil {
			logger.Fatal("init upload store", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	userRepo := repository.NewUserRepository(db)
	deceasedRepo := repository.NewDeceasedRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	guestbookRepo := repository.NewGuestbookRepository(db)

	h := handler.New(
		service.NewAuthService(userRepo),
		service.NewUserService(userRepo),
		service.NewDeceasedService(deceasedRepo),
		service.NewPhotoService(photoRepo, store, cfg.Upload.Storage),
		service.NewGuestbookService(guestbookRepo),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(cfg, h, rdb),
	}

	go func() {
		logger.Info("server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
