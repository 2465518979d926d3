package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const familyCacheKey = "catalog:families"

// FamilyCache is a read-through Redis cache over the distinct-families
// listing. Families change when someone edits the legacy attribute table,
// which is rare, so a short TTL is enough. Cache failures degrade to the
// store; they never surface to the caller.
type FamilyCache struct {
	store  Store
	client *redis.Client
	cfg    Config
	ttl    time.Duration
	logger *slog.Logger
}

// NewFamilyCache constructs FamilyCache. A nil client disables caching.
func NewFamilyCache(store Store, client *redis.Client, cfg Config, ttl time.Duration, logger *slog.Logger) *FamilyCache {
	return &FamilyCache{store: store, client: client, cfg: cfg, ttl: ttl, logger: logger}
}

// Families returns the distinct, denylist-filtered family names.
func (c *FamilyCache) Families(ctx context.Context) ([]string, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, familyCacheKey).Bytes()
		switch {
		case err == nil:
			var families []string
			if json.Unmarshal(raw, &families) == nil {
				return families, nil
			}
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("family cache read failed", slog.Any("error", err))
		}
	}

	families, err := c.store.Families(ctx, normalizedDenylist(c.cfg))
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if raw, err := json.Marshal(families); err == nil {
			if err := c.client.Set(ctx, familyCacheKey, raw, c.ttl).Err(); err != nil {
				c.logger.Warn("family cache write failed", slog.Any("error", err))
			}
		}
	}
	return families, nil
}

// normalizedDenylist uppercases the configured denylist so exclusion matches
// the case normalization applied at query time.
func normalizedDenylist(cfg Config) []string {
	out := make([]string, len(cfg.FamilyDenylist))
	for i, f := range cfg.FamilyDenylist {
		out[i] = NormalizeText(f)
	}
	return out
}
