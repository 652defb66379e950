package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PromptCache stores the system prompt rendered for each session. The
// prompt is built exactly once at session start; caching the snapshot
// keeps it stable even if the survey is edited mid-session, and lets
// operators inspect what a live agent was instructed with.
type PromptCache interface {
	Set(ctx context.Context, sessionID, prompt string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type promptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPromptCache creates a new prompt cache
func NewPromptCache(client *redis.Client) PromptCache {
	return &promptCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *promptCache) key(sessionID string) string {
	return fmt.Sprintf("session:%s:prompt", sessionID)
}

func (c *promptCache) Set(ctx context.Context, sessionID, prompt string) error {
	return c.client.Set(ctx, c.key(sessionID), prompt, c.ttl).Err()
}

// Get returns the cached prompt, or "" when none is stored.
func (c *promptCache) Get(ctx context.Context, sessionID string) (string, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

func (c *promptCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
