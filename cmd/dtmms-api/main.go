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

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/app"
	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/internal/store"
	"github.com/mindbuilders/dtmms/pkg/config"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/logger"
	"github.com/mindbuilders/dtmms/pkg/password"
)

// @title Digital Training & Mentorship Management API
// @version 1.0.0
// @description Programmes, sessions, attendance, mentorship and messaging for the training organisation.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	medium, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		logr.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	metrics := service.NewMetricsService()
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	st := store.New(medium,
		store.WithSeed(func() (*seed.Dataset, error) { return seed.Load(hasher) }),
		store.WithObserver(metrics),
		store.WithLogger(logr.Named("store")),
	)
	defer func() {
		if err := st.Close(); err != nil {
			logr.Warn("failed to close storage", zap.Error(err))
		}
	}()

	if cfg.Seed.OnStart {
		seeded, err := st.InitializeIfAbsent(ctx)
		if err != nil {
			logr.Fatal("failed to initialize store", zap.Error(err))
		}
		logr.Info("store ready", zap.Bool("seeded", seeded), zap.String("driver", cfg.Storage.Driver))
	}

	services := app.NewServices(st, hasher, cfg.Auth, logr)
	router := app.NewRouter(cfg, st, services, metrics, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
