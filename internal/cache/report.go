package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/pedidosfiliais/backend-go/internal/config"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	consolidatedKey  = "report:consolidated"
	defaultReportTTL = time.Minute
)

// ReportCache holds the unfiltered consolidated rows between report
// requests. Filtering and summarizing stay in-process; only the expensive
// three-collection join is cached.
type ReportCache interface {
	GetRows(ctx context.Context) ([]domain.ConsolidatedRow, bool, error)
	SetRows(ctx context.Context, rows []domain.ConsolidatedRow) error
	Invalidate(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetRows(ctx context.Context) ([]domain.ConsolidatedRow, bool, error) {
	payload, err := c.client.Get(ctx, consolidatedKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.ConsolidatedRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode consolidated rows cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisReportCache) SetRows(ctx context.Context, rows []domain.ConsolidatedRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode consolidated rows cache: %w", err)
	}

	if err := c.client.Set(ctx, consolidatedKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, consolidatedKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *noopReportCache) GetRows(ctx context.Context) ([]domain.ConsolidatedRow, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetRows(ctx context.Context, rows []domain.ConsolidatedRow) error {
	return nil
}

func (n *noopReportCache) Invalidate(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
