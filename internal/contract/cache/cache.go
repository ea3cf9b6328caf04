// Package cache is an optional read-through cache for contract reads at the
// gateway layer. The ledger remains the source of truth: every successful
// write invalidates the cached copy, and a nil cache disables the layer
// entirely. The engine itself never sees the cache.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"foncier/internal/contract/canonical"
	"foncier/internal/contract/models"
)

const keyPrefix = "foncier:record:"

// RecordCache caches canonical record bytes in Redis.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New builds a cache over client. Returns nil when client is nil so callers
// can wire it unconditionally.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RecordCache {
	if client == nil {
		return nil
	}
	return &RecordCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached record for id, or nil on miss. Cache failures are
// logged and treated as misses; the caller falls through to the ledger.
func (c *RecordCache) Get(ctx context.Context, id string) *models.ContractRecord {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "record cache read failed", "id", id, "error", err.Error())
		}
		return nil
	}
	rec, err := canonical.UnmarshalRecord(data)
	if err != nil {
		c.logger.WarnContext(ctx, "record cache entry unparseable", "id", id, "error", err.Error())
		return nil
	}
	return rec
}

// Set stores the record under its id.
func (c *RecordCache) Set(ctx context.Context, rec *models.ContractRecord) {
	if c == nil {
		return
	}
	data, err := canonical.MarshalRecord(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+rec.ID, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "record cache write failed", "id", rec.ID, "error", err.Error())
	}
}

// Invalidate drops the cached copy after a write.
func (c *RecordCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.logger.WarnContext(ctx, "record cache invalidation failed", "id", id, "error", err.Error())
	}
}
