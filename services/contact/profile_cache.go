package contact

import (
	"context"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/security"
)

const DefaultProfileTTL = 5 * time.Minute

// ProfileCache keeps recently resolved profiles keyed by email
type ProfileCache interface {
	GetProfile(ctx context.Context, key string) (*Profile, bool, error)
	SetProfile(ctx context.Context, key string, profile *Profile, ttl time.Duration) error
	DeleteProfile(ctx context.Context, key string) error
}

type MemoryProfileCache struct {
	cache *security.Cache
}

func NewMemoryProfileCache(cache *security.Cache) *MemoryProfileCache {
	return &MemoryProfileCache{cache: cache}
}

func (m *MemoryProfileCache) GetProfile(_ context.Context, key string) (*Profile, bool, error) {
	v, err := m.cache.Get(key)
	if err != nil {
		return nil, false, nil
	}
	p, ok := v.(Profile)
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (m *MemoryProfileCache) SetProfile(_ context.Context, key string, profile *Profile, ttl time.Duration) error {
	// store a copy, callers may mutate what they got back
	m.cache.InsertWithTTL(key, *profile, ttl)
	return nil
}

func (m *MemoryProfileCache) DeleteProfile(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
