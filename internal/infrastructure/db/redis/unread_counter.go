package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const counterTTL = 10 * time.Minute

// UnreadCounter caches per-user unread notification counts in Redis. Entries
// expire after counterTTL; a write path invalidates eagerly, so expiry only
// bounds staleness after missed invalidations.
type UnreadCounter struct {
	client *redis.Client
	prefix string
}

func NewUnreadCounter(client *redis.Client, prefix string) *UnreadCounter {
	if prefix == "" {
		prefix = "notif:unread"
	}
	return &UnreadCounter{client: client, prefix: prefix}
}

func (c *UnreadCounter) key(userID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, userID)
}

// Get returns the cached count and whether the key was present.
func (c *UnreadCounter) Get(ctx context.Context, userID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("unread counter get: %w", err)
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("unread counter parse: %w", err)
	}
	return count, true, nil
}

func (c *UnreadCounter) Set(ctx context.Context, userID string, count int64) error {
	if err := c.client.Set(ctx, c.key(userID), count, counterTTL).Err(); err != nil {
		return fmt.Errorf("unread counter set: %w", err)
	}
	return nil
}

func (c *UnreadCounter) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("unread counter invalidate: %w", err)
	}
	return nil
}
