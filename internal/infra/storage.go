package infra

import (
	"fmt"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// OpenStorage builds the key/value backend named by cfg.StorageDriver. The
// Redis client is returned whenever REDIS_URL is set, since the job queue needs
// it regardless of the storage driver; it is nil otherwise.
func OpenStorage(cfg *config.Config) (storage.Storage, *redis.Client, error) {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		if rdb, err = NewRedis(cfg.RedisURL); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	var (
		st  storage.Storage
		err error
	)
	switch cfg.StorageDriver {
	case "memory":
		st = storage.NewMemoryStorage()
	case "redis":
		if rdb == nil {
			return nil, nil, fmt.Errorf("STORAGE_DRIVER=redis requires REDIS_URL")
		}
		st = storage.NewRedisStorage(rdb)
	case "postgres":
		st, err = openGorm("postgres", cfg.DatabaseURL)
	case "sqlite":
		st, err = openGorm("sqlite", cfg.SQLitePath)
	default:
		err = fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, nil, err
	}

	log.Info().Str("driver", cfg.StorageDriver).Bool("redis", rdb != nil).Msg("storage opened")
	return st, rdb, nil
}

func openGorm(driver, dsn string) (storage.Storage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s storage requires a DSN", driver)
	}
	db, err := NewDatabase(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return storage.NewGormStorage(db)
}
