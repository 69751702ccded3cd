package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
)

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, prefix string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sessionId string) string {
	return fmt.Sprintf("%s:discovery:%s", s.prefix, sessionId)
}

// Ping checks the connection, used at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, sessionId string, state SessionState) error {
	data, err := jsoncompat.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionId), data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionId string) (*SessionState, error) {
	data, err := s.client.Get(ctx, s.key(sessionId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var state SessionState
	if err := jsoncompat.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionId string) error {
	return s.client.Del(ctx, s.key(sessionId)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
