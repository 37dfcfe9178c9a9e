// Command dtmms-reset restores the configured store to the demo dataset.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/internal/store"
	"github.com/mindbuilders/dtmms/pkg/config"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/logger"
	"github.com/mindbuilders/dtmms/pkg/password"
)

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	medium, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		logr.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	st := store.New(medium,
		store.WithSeed(func() (*seed.Dataset, error) { return seed.Load(hasher) }),
		store.WithLogger(logr.Named("store")),
	)
	defer st.Close() //nolint:errcheck

	if err := st.Reset(ctx); err != nil {
		logr.Fatal("reset failed", zap.Error(err))
	}
	counts, err := st.Counts(ctx)
	if err != nil {
		logr.Fatal("failed to count records", zap.Error(err))
	}
	logr.Info("store reset to demo data", zap.String("driver", cfg.Storage.Driver), zap.Any("counts", counts))
}
