// Package reports serves the dashboard's view of stored reports: a cached
// proxy over the external backend plus per-status aggregation.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"speakup.app/intake/internal/model"
)

const cacheKey = "speakup:reports:all"

// Retriever fetches stored reports from the external backend.
type Retriever interface {
	Retrieve(ctx context.Context) ([]model.StoredReport, error)
}

// Cache is the small slice of Redis the service needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Service struct {
	retriever Retriever
	cache     Cache
	ttl       time.Duration
}

func NewService(retriever Retriever, cache Cache, ttl time.Duration) *Service {
	return &Service{
		retriever: retriever,
		cache:     cache,
		ttl:       ttl,
	}
}

// List returns all stored reports, reading through the cache. Cache errors
// are never fatal; the backend stays the source of truth.
func (s *Service) List(ctx context.Context) ([]model.StoredReport, error) {
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var reports []model.StoredReport
		if err := json.Unmarshal([]byte(cached), &reports); err == nil {
			return reports, nil
		}
		slog.WarnContext(ctx, "discarding malformed report cache entry")
	}

	reports, err := s.retriever.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	if encoded, err := json.Marshal(reports); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded), s.ttl); err != nil {
			slog.WarnContext(ctx, "failed to cache reports", "error", err)
		}
	}

	return reports, nil
}

// Stats aggregates reports per status for the dashboard cards.
func (s *Service) Stats(ctx context.Context) (model.ReportStats, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return model.ReportStats{}, err
	}

	stats := model.ReportStats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case model.ReportStatusOpen:
			stats.Open++
		case model.ReportStatusInProgress:
			stats.InProgress++
		case model.ReportStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

// RedisCache adapts a redis client to the Cache interface.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
