package services

import (
	"context"
	stderrors "errors"
	"log"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingCachePrefix = "listings:"

// ListingCache keeps successful listing responses in Redis for a short
// time. A zero TTL disables it.
type ListingCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewListingCache(redisClient *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{redisClient: redisClient, ttl: ttl}
}

func listingKey(query url.Values) string {
	// Encode sorts by key, so equal queries share an entry.
	return listingCachePrefix + query.Encode()
}

func (c *ListingCache) Get(ctx context.Context, query url.Values) ([]byte, bool) {
	if c == nil || c.ttl == 0 {
		return nil, false
	}
	raw, err := c.redisClient.Get(ctx, listingKey(query)).Bytes()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			log.Printf("listing_cache_get_failed error=%q", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *ListingCache) Put(ctx context.Context, query url.Values, body []byte) {
	if c == nil || c.ttl == 0 {
		return
	}
	if err := c.redisClient.Set(ctx, listingKey(query), body, c.ttl).Err(); err != nil {
		log.Printf("listing_cache_put_failed error=%q", err)
	}
}

// Invalidate drops every cached listing page.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.ttl == 0 {
		return
	}
	var keys []string
	iter := c.redisClient.Scan(ctx, 0, listingCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("listing_cache_scan_failed error=%q", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("listing_cache_invalidate_failed error=%q", err)
		return
	}
	log.Printf("listing_cache_invalidated keys=%d", len(keys))
}
