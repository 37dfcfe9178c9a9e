package kv

import (
	"context"
	"fmt"

	"github.com/mindbuilders/dtmms/pkg/config"
)

// Open builds the medium selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Medium, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageBadger, "":
		return NewBadger(cfg.BadgerDir, false)
	case config.StorageRedis:
		return NewRedis(ctx, cfg.Redis, cfg.Namespace)
	case config.StoragePostgres:
		return OpenPostgres(ctx, cfg.Database)
	case config.StorageSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
