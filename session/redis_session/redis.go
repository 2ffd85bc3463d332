package redis_session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmh2003/shopchat/session"
)

// Store keeps sessions in Redis with a native key TTL, so expiry needs no
// lazy check on our side and survives process restarts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func key(userID string) string {
	return fmt.Sprintf("chat:session:%s", userID)
}

func (s *Store) Put(ctx context.Context, userID string, data session.Context) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session context: %w", err)
	}
	return s.client.Set(ctx, key(userID), payload, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (session.Context, bool, error) {
	val, err := s.client.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var data session.Context
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, false, fmt.Errorf("unmarshal session context: %w", err)
	}
	return data, true, nil
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, key(userID)).Err()
}
