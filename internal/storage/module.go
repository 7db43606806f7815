package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/migration"
	"github.com/smallbiznis/invoicely/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("storage",
	fx.Provide(NewSlot),
)

// NewSlot opens the slot selected by STORAGE_DRIVER and releases any
// connection it owns on stop.
func NewSlot(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (Slot, error) {
	slot, closeFn, err := Open(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.Info("storage slot ready",
		zap.String("driver", slot.Driver()),
		zap.String("slot", cfg.Storage.Slot),
	)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeFn()
		},
	})
	return slot, nil
}

// Open builds the configured slot outside of fx. The returned func
// releases the backing connection.
func Open(ctx context.Context, cfg config.Config) (Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StorageDriverFile, "":
		slot, err := NewFile(cfg.Storage.Dir, cfg.Storage.Slot)
		return slot, noop, err
	case config.StorageDriverSQL:
		conn, err := db.Open(db.FromConfig(cfg), cfg.AppName)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := migration.Run(conn.WithContext(ctx), &SlotRecord{}); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate storage: %w", err)
		}
		slot, err := NewSQL(conn, cfg.Storage.Slot)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return slot, sqlDB.Close, nil
	case config.StorageDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		slot, err := NewRedis(client, cfg.Storage.Slot)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return slot, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
