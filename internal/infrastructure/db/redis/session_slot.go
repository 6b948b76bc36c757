package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SessionSlot stores client session keys as plain Redis strings under a prefix,
// e.g. storerate:session:authToken. Keys never expire.
type SessionSlot struct {
	client *redis.Client
	prefix string
}

// NewSessionSlot returns a slot whose keys live under prefix.
func NewSessionSlot(client *redis.Client, prefix string) *SessionSlot {
	if prefix == "" {
		prefix = "storerate:session:"
	}
	return &SessionSlot{client: client, prefix: prefix}
}

func (s *SessionSlot) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SessionSlot) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *SessionSlot) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
