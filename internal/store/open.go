package store

import (
	"context"
	"fmt"
	"strings"

	"payments-gateway/internal/config"
	"payments-gateway/internal/database"
)

const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Open connects to the backend named by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StoreBackend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendMongo:
		client, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewMongo(client, cfg.MongoDatabase, cfg.MongoCollection), nil
	case BackendPostgres:
		db, err := database.ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return NewSQL(db), nil
	case BackendSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQL(db), nil
	case BackendRedis:
		rdb, err := database.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewRedis(rdb, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
