package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/firstapp/accounts/internal/core/domain"
)

const defaultFlashTTL = 10 * time.Minute

// FlashStore keeps per-session flash messages in a Redis list.
// Key format: flash:<session_id>
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlashStore creates a FlashStore. Messages expire after ttl if never read.
func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	if ttl <= 0 {
		ttl = defaultFlashTTL
	}
	return &FlashStore{client: client, ttl: ttl}
}

// Push appends a message and refreshes the list's expiry.
func (s *FlashStore) Push(ctx context.Context, sessionID string, flash domain.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// Pop returns every pending message in insertion order and clears them.
func (s *FlashStore) Pop(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	items := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pop flash: %w", err)
	}

	raw := items.Val()
	flashes := make([]domain.Flash, 0, len(raw))
	for _, item := range raw {
		var f domain.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// Ping reports whether Redis answers.
func (s *FlashStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *FlashStore) key(sessionID string) string {
	return "flash:" + sessionID
}
