package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"payments-gateway/internal/models"
)

// Redis keeps every payment as a JSON document in a single hash, one field per id.
type Redis struct {
	rdb *redis.Client
	key string
}

func NewRedis(rdb *redis.Client, key string) *Redis {
	return &Redis{rdb: rdb, key: key}
}

func (r *Redis) List(ctx context.Context) ([]models.Payment, error) {
	raw, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	payments := make([]models.Payment, 0, len(raw))
	for id, doc := range raw {
		var p models.Payment
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode payment %s: %w", id, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *Redis) Get(ctx context.Context, id string) (*models.Payment, error) {
	doc, err := r.rdb.HGet(ctx, r.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}

	var p models.Payment
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", id, err)
	}
	return &p, nil
}

func (r *Redis) Save(ctx context.Context, p models.Payment) (*models.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payment %s: %w", p.ID, err)
	}
	if err := r.rdb.HSet(ctx, r.key, p.ID, doc).Err(); err != nil {
		return nil, fmt.Errorf("save payment %s: %w", p.ID, err)
	}
	return &p, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	if err := r.rdb.HDel(ctx, r.key, id).Err(); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

func (r *Redis) Count(ctx context.Context) (int64, error) {
	n, err := r.rdb.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
