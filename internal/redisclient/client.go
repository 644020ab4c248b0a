package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crm-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	productsKey = "crm:products:all"
	productsTTL = 5 * time.Minute
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetCachedProducts returns the cached full product list, or (nil, nil) on a
// cache miss.
func (c *Client) GetCachedProducts(ctx context.Context) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, productsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}
	return products, nil
}

// CacheProducts stores the full product list with a fixed TTL
func (c *Client) CacheProducts(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	return c.rdb.Set(ctx, productsKey, data, productsTTL).Err()
}

// InvalidateProducts drops the cached product list after a mutation
func (c *Client) InvalidateProducts(ctx context.Context) error {
	return c.rdb.Del(ctx, productsKey).Err()
}
