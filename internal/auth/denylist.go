package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisDenylist records revoked refresh tokens until they would have expired anyway.
// A disabled denylist accepts every token and forgets every revocation.
type RedisDenylist struct {
	client  *redis.Client
	enabled bool
	now     func() time.Time
}

func NewRedisDenylist(ctx context.Context, cfg RedisConfig) (*RedisDenylist, error) {
	if !cfg.Enabled {
		return &RedisDenylist{enabled: false, now: time.Now}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDenylist{client: client, enabled: true, now: time.Now}, nil
}

func denylistKey(jti string) string {
	return fmt.Sprintf("denylist:refresh:%s", jti)
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	if !d.enabled {
		return nil
	}

	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, denylistKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoking token %s: %w", jti, err)
	}

	return nil
}

func (d *RedisDenylist) Revoked(ctx context.Context, jti string) (bool, error) {
	if !d.enabled {
		return false, nil
	}

	err := d.client.Get(ctx, denylistKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("checking token %s: %w", jti, err)
	}

	return true, nil
}

func (d *RedisDenylist) Close() error {
	if !d.enabled {
		return nil
	}

	return d.client.Close()
}
