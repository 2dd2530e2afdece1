// bbs/cache.go
package bbs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const userCacheTTL = 5 * time.Minute

// Cache is a Redis-backed store. It implements PersistencePort over
// per-channel snapshot keys, and it caches user lookups in front of
// the database so the session middleware does not hit Postgres on
// every request.
type Cache struct {
	rdb *redis.Client
}

func NewCache(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

func channelKey(channelID string) string {
	return "bbs:channel:" + channelID
}

func userKey(username string) string {
	return "bbs:user:" + username
}

// Load returns the snapshot stored under the channel key. A missing key
// or an unreadable value is an empty collection.
func (c *Cache) Load(ctx context.Context, channelID string) ([]Post, error) {
	raw, err := c.rdb.Get(ctx, channelKey(channelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Post{}, nil
		}
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		log.Printf("discarding unreadable snapshot for channel %s: %v", channelID, err)
		return []Post{}, nil
	}
	return posts, nil
}

func (c *Cache) Save(ctx context.Context, channelID string, posts []Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.rdb.Set(ctx, channelKey(channelID), raw, 0).Err()
}

// CacheUser stores the user under its username for a short TTL.
func (c *Cache) CacheUser(ctx context.Context, user *User) error {
	return c.rdb.Set(ctx, userKey(user.Username), user, userCacheTTL).Err()
}

// GetUser returns a cached user, or nil on a miss.
func (c *Cache) GetUser(ctx context.Context, username string) (*User, error) {
	raw, err := c.rdb.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var user User
	if err := user.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return &user, nil
}

// InvalidateUser drops the cached entry after a profile change.
func (c *Cache) InvalidateUser(ctx context.Context, username string) error {
	return c.rdb.Del(ctx, userKey(username)).Err()
}
