package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// TodoCache stores each user's full todo list as a JSON value.
// Key format: todos-by-user:<user_id>
type TodoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTodoCache creates a TodoCache wrapping the given Redis client. Entries
// expire after ttl regardless of repairs missing them.
func NewTodoCache(client *redis.Client, ttl time.Duration) *TodoCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TodoCache{client: client, ttl: ttl}
}

// Get returns the cached list for userID and whether an entry was present.
func (c *TodoCache) Get(ctx context.Context, userID string) ([]domain.Todo, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var todos []domain.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		// Undecodable entries are dropped rather than served.
		_ = c.client.Del(ctx, c.key(userID)).Err()
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return todos, true, nil
}

// Set stores the full list under the user's key with a fresh TTL.
func (c *TodoCache) Set(ctx context.Context, userID string, todos []domain.Todo) error {
	raw, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Evict removes the user's entry. Missing keys are not an error.
func (c *TodoCache) Evict(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

func (c *TodoCache) key(userID string) string {
	return "todos-by-user:" + userID
}
