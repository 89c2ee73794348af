package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SettingsStore keeps plugin settings, one hash per plugin.
type SettingsStore struct {
	cache *redis.Client
}

func NewSettingsStore(cache *redis.Client) *SettingsStore {
	return &SettingsStore{
		cache: cache,
	}
}

// Setting returns "" for a setting that was never stored.
func (s *SettingsStore) Setting(ctx context.Context, plugin, name string) (string, error) {
	value, err := s.cache.HGet(ctx, key("config", plugin), name).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

func (s *SettingsStore) SetSetting(ctx context.Context, plugin, name, value string) error {
	return s.cache.HSet(ctx, key("config", plugin), name, value).Err()
}
