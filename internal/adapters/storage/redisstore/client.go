package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Open crea el cliente y verifica la conexión con PING.
func Open(opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// jsonStore guarda un valor JSON por key con TTL. Cada Save renueva el TTL.
type jsonStore[T any] struct {
	rdb      redis.Cmdable
	prefix   string
	ttl      time.Duration
	notFound error
}

func (s jsonStore[T]) key(id string) string {
	return s.prefix + id
}

func (s jsonStore[T]) save(ctx context.Context, id string, v T) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.prefix, err)
	}
	return s.rdb.Set(ctx, s.key(id), b, s.ttl).Err()
}

func (s jsonStore[T]) get(ctx context.Context, id string) (T, error) {
	var out T
	b, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return out, s.notFound
		}
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", s.prefix, err)
	}
	return out, nil
}

func (s jsonStore[T]) delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return s.notFound
	}
	return nil
}
