// Package session tracks issued login tokens in Redis so that logout can
// revoke a token before it expires.
package session

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisv9.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, jti, userID string) error {
	if err := s.client.Set(ctx, s.key(jti), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis save session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, s.key(jti)).Err(); err != nil {
		return fmt.Errorf("redis revoke session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) IsActive(ctx context.Context, jti string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check session failed: %w", err)
	}
	return exists > 0, nil
}

func (s *RedisStore) key(jti string) string {
	return "auth:session:" + jti
}
