// Package redis caches search results in Redis.
//
// Keys embed a catalog version counter. Invalidate bumps the counter, so
// entries written before a catalog change are never read again and simply
// expire. Get reports the version it read under and Set writes under that
// same version, so results fetched across an Invalidate land in a dead key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

const (
	DefaultTTL    = 30 * time.Second
	DefaultPrefix = "phonestore:search:"
)

type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type Option func(*SearchCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *SearchCache) { c.ttl = ttl }
}

func WithPrefix(prefix string) Option {
	return func(c *SearchCache) { c.prefix = prefix }
}

func NewSearchCache(client *redis.Client, opts ...Option) *SearchCache {
	c := &SearchCache{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

func (c *SearchCache) Get(ctx context.Context, term string) ([]domain.SearchResult, int64, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	val, err := c.client.Get(ctx, c.key(version, term)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("get search cache: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(val, &entries); err != nil {
		// corrupt entry, treat as a miss
		return nil, version, false, nil
	}

	out := make([]domain.SearchResult, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.SearchResult{
			ID:          e.ID,
			Name:        e.Name,
			Price:       domain.Money{Currency: e.Currency, Amount: e.Amount},
			Category:    e.Category,
			Subcategory: e.Subcategory,
		})
	}
	return out, version, true, nil
}

func (c *SearchCache) Set(ctx context.Context, version int64, term string, results []domain.SearchResult) error {
	entries := make([]entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, entry{
			ID:          r.ID,
			Name:        r.Name,
			Currency:    r.Price.Currency,
			Amount:      r.Price.Amount,
			Category:    r.Category,
			Subcategory: r.Subcategory,
		})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}

	if err := c.client.Set(ctx, c.key(version, term), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set search cache: %w", err)
	}
	return nil
}

func (c *SearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("bump catalog version: %w", err)
	}
	return nil
}

func (c *SearchCache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("read catalog version: %w", err)
	}
	return version, nil
}

func (c *SearchCache) key(version int64, term string) string {
	return fmt.Sprintf("%sv%d:%s", c.prefix, version, term)
}

func (c *SearchCache) versionKey() string {
	return c.prefix + "version"
}
