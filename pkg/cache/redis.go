package cache

import (
	"context"
	"time"

	"resto-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis client used for checkout locks and CMS caching
type Cache struct {
	client *redis.Client
}

func InitRedis(config utils.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Acquire takes a short-lived lock via SetNX. Returns false if someone else holds it.
func (c *Cache) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, owner, ttl).Result()
}

// Release drops the lock only if it is still owned by this caller
func (c *Cache) Release(ctx context.Context, key, owner string) error {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already released
	}
	if err != nil {
		return err
	}
	if val == owner {
		return c.client.Del(ctx, key).Err()
	}
	return nil // do not release a lock we do not own
}

func (c *Cache) Close() error {
	return c.client.Close()
}
