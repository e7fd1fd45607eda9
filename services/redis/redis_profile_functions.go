package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	"github.com/redis/go-redis/v9"
)

// GetProfile implements contact.ProfileCache
func (r *RedisService) GetProfile(ctx context.Context, key string) (*contact.Profile, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not get profile %s from Redis: %w", key, err)
	}

	var profile contact.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// a stale shape from an older release, treat as a miss
		return nil, false, nil
	}

	return &profile, true, nil
}

// SetProfile implements contact.ProfileCache
func (r *RedisService) SetProfile(ctx context.Context, key string, profile *contact.Profile, ttl time.Duration) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("could not encode profile %s: %w", key, err)
	}

	if err := r.client.Set(ctx, r.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("could not store profile %s in Redis: %w", key, err)
	}
	return nil
}

// DeleteProfile implements contact.ProfileCache
func (r *RedisService) DeleteProfile(ctx context.Context, key string) error {
	return r.Delete(ctx, key)
}
