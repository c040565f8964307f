package sessioncache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Cache holds the revocation markers the auth middleware consults so a
// blocked account is rejected on its next authenticated action instead
// of at token expiry.
type Cache struct {
	client *redis.Client
}

func New(addr, password string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func blockedKey(userID uint) string {
	return fmt.Sprintf("blocked:user:%d", userID)
}

func (c *Cache) MarkBlocked(ctx context.Context, userID uint) error {
	// No TTL: the marker lives until the admin unblocks.
	return c.client.Set(ctx, blockedKey(userID), "1", 0).Err()
}

func (c *Cache) ClearBlocked(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, blockedKey(userID)).Err()
}

func (c *Cache) IsBlocked(ctx context.Context, userID uint) (bool, error) {
	_, err := c.client.Get(ctx, blockedKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
