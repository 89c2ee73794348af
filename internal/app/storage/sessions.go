package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionStore struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewSessionStore(cache *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache,
		ttl:   ttl,
	}
}

// Create opens a session for the user and returns its token.
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, key("session", token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// UserID resolves a session token, ErrNotFound when it is unknown or expired.
func (s *SessionStore) UserID(ctx context.Context, token string) (int64, error) {
	raw, err := s.cache.Get(ctx, key("session", token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.cache.Del(ctx, key("session", token)).Err()
}
