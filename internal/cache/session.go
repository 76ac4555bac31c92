package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitrine/vitrine/internal/model"
)

// sessionKeyPrefix is the Redis key prefix for dashboard sessions.
const sessionKeyPrefix = "session:"

// ErrSessionNotFound indicates the token has no live session (expired,
// revoked, or never issued).
var ErrSessionNotFound = errors.New("session not found")

// storedSession is the session payload persisted in Redis.
type storedSession struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SetSession stores a session under its token with the given TTL.
func (c *Cache) SetSession(ctx context.Context, s *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(storedSession{Email: s.Email, CreatedAt: s.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := c.client.Set(ctx, sessionKeyPrefix+s.Token, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// GetSession looks up a session by token.
// Returns ErrSessionNotFound when the token does not resolve.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := c.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupted entry - treat as missing
		return nil, ErrSessionNotFound
	}

	return &model.Session{
		Token:     token,
		Email:     stored.Email,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// DeleteSession revokes a session. Deleting an absent token is not an error.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
