package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/api/metrics"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

const (
	reportTTL  = 30 * time.Second
	versionKey = "expense_reports:ver"
)

// ReportCache caches grouped expense aggregations in Redis. Entries are keyed
// by a write-version counter plus the filter fingerprint, so any expense write
// invalidates every cached report with a single INCR. All failures degrade to
// a cache miss.
type ReportCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewReportCache(client *redis.Client, log zerolog.Logger) *ReportCache {
	return &ReportCache{client: client, log: log}
}

func (c *ReportCache) Get(ctx context.Context, fingerprint string) (*ports.GroupedExpenses, bool) {
	payload, err := c.client.Get(ctx, c.key(ctx, fingerprint)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("report cache read failed")
		}
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var result ports.GroupedExpenses
	if err := json.Unmarshal(payload, &result); err != nil {
		c.log.Warn().Err(err).Msg("report cache entry corrupt")
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
	return &result, true
}

func (c *ReportCache) Set(ctx context.Context, fingerprint string, result *ports.GroupedExpenses) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, fingerprint), payload, reportTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("report cache write failed")
	}
}

// Invalidate bumps the version counter, orphaning every cached report.
// Orphaned entries expire via their TTL.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

func (c *ReportCache) key(ctx context.Context, fingerprint string) string {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		// Unknown version: pick a key no writer uses so the lookup misses.
		return "expense_reports:unknown:" + fingerprint
	}
	return fmt.Sprintf("expense_reports:%d:%s", ver, fingerprint)
}
