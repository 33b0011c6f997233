package tmdb

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 6 * time.Hour

// CachedClient wraps Client with a Redis read-through cache. A cache
// outage falls back to the live API.
type CachedClient struct {
	client *Client
	rdb    *redis.Client
}

func NewCachedClient(client *Client, rdb *redis.Client) *CachedClient {
	return &CachedClient{client: client, rdb: rdb}
}

func (c *CachedClient) SearchMovie(ctx context.Context, query string) ([]Movie, error) {
	key := "tmdb:search:" + query

	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var movies []Movie
		if err := json.Unmarshal(cached, &movies); err == nil {
			return movies, nil
		}
	}

	movies, err := c.client.SearchMovie(ctx, query)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(movies); err == nil {
		if err := c.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
			log.Printf("tmdb cache: set failed for %q: %v", query, err)
		}
	}

	return movies, nil
}

func (c *CachedClient) GetMovie(ctx context.Context, id int) (*Movie, error) {
	return c.client.GetMovie(ctx, id)
}

func (c *CachedClient) GetRecommendations(ctx context.Context, id int) ([]Movie, error) {
	return c.client.GetRecommendations(ctx, id)
}
