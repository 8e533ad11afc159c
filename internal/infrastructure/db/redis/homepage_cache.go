package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	homepageKey        = "listings:homepage"
	defaultHomepageTTL = 5 * time.Minute
)

// HomepageCache stores the assembled homepage sections as one JSON value.
type HomepageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHomepageCache creates a HomepageCache. If ttl <= 0, defaultHomepageTTL is used.
func NewHomepageCache(client *redis.Client, ttl time.Duration) *HomepageCache {
	if ttl <= 0 {
		ttl = defaultHomepageTTL
	}
	return &HomepageCache{client: client, ttl: ttl}
}

// Get returns the cached sections. ok is false on a miss.
func (c *HomepageCache) Get(ctx context.Context) (*ports.HomepageListings, bool, error) {
	raw, err := c.client.Get(ctx, homepageKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("homepage cache get: %w", err)
	}

	h, err := decodeHomepage(raw)
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}

func (c *HomepageCache) Set(ctx context.Context, h *ports.HomepageListings) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("homepage cache encode: %w", err)
	}
	return c.client.Set(ctx, homepageKey, raw, c.ttl).Err()
}

// Invalidate drops the cached value so the next read rebuilds it.
func (c *HomepageCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, homepageKey).Err()
}

func decodeHomepage(raw []byte) (*ports.HomepageListings, error) {
	var h ports.HomepageListings
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("homepage cache decode: %w", err)
	}
	return &h, nil
}
