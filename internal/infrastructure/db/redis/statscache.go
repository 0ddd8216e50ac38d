package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/core/ports"
)

const (
	statsKey = "stats:dashboard"
	statsTTL = 30 * time.Second
)

// StatsCache caches the admin stats payload in Redis with a short TTL.
// Cache failures are logged and treated as misses; the aggregation is always
// able to answer without Redis.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) Get(ctx context.Context) (*ports.Stats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats ports.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn().Err(err).Msg("stats cache entry corrupt, dropping")
		_ = c.client.Del(ctx, statsKey).Err()
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *ports.Stats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}

// Invalidate drops the cached snapshot after a report mutation.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
