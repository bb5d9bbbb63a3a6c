// Package services provides external service integrations for the application
package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceService keeps a short-lived liveness marker per visitor session so
// operators can see how many visitors are on the site right now. Markers
// expire on their own; nothing is ever deleted explicitly.
type PresenceService interface {
	MarkActive(ctx context.Context, sessionKey string) error
	ActiveCount(ctx context.Context) (int64, error)
}

// RedisPresenceService implements PresenceService on a redis keyspace.
type RedisPresenceService struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisPresenceService(client *redis.Client, prefix string, ttl time.Duration) PresenceService {
	return &RedisPresenceService{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisPresenceService) MarkActive(ctx context.Context, sessionKey string) error {
	return s.client.Set(ctx, s.prefix+sessionKey, 1, s.ttl).Err()
}

func (s *RedisPresenceService) ActiveCount(ctx context.Context) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 1000).Result()
		if err != nil {
			return 0, err
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

// NoopPresenceService is used when the cache is disabled.
type NoopPresenceService struct{}

func NewNoopPresenceService() PresenceService {
	return &NoopPresenceService{}
}

func (s *NoopPresenceService) MarkActive(ctx context.Context, sessionKey string) error {
	return nil
}

func (s *NoopPresenceService) ActiveCount(ctx context.Context) (int64, error) {
	return 0, nil
}
