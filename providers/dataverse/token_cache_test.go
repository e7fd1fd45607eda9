package dataverse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenCacheGet(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"Fresh token is served", 0, true},
		{"Token outside the buffer is served", 58*time.Minute + 59*time.Second, true},
		{"Token exactly at the buffer is not served", 59 * time.Minute, false},
		{"Token inside the buffer is not served", 59*time.Minute + 30*time.Second, false},
		{"Expired token is not served", 2 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &testClock{now: start}
			cache := NewTokenCache(DefaultExpiryBuffer, clock.Now)
			cache.Set("abc", time.Hour)

			clock.Advance(tt.elapsed)
			token, ok := cache.Get()
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, "abc", token)
			} else {
				assert.Empty(t, token)
			}
		})
	}
}

func TestTokenCacheEmptyAndInvalidate(t *testing.T) {
	cache := NewTokenCache(DefaultExpiryBuffer, nil)

	_, ok := cache.Get()
	assert.False(t, ok)

	stored := cache.Set("abc", time.Hour)
	assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Second)

	cache.Invalidate()
	_, ok = cache.Get()
	assert.False(t, ok)

	_, ok = cache.Peek()
	assert.False(t, ok)
}

func TestTokenCacheSetOverwrites(t *testing.T) {
	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewTokenCache(DefaultExpiryBuffer, clock.Now)

	cache.Set("first", time.Hour)
	clock.Advance(10 * time.Minute)
	cache.Set("second", 30*time.Minute)

	token, ok := cache.Get()
	assert.True(t, ok)
	assert.Equal(t, "second", token)

	peeked, _ := cache.Peek()
	assert.Equal(t, clock.Now().Add(30*time.Minute), peeked.ExpiresAt)
}

func TestTokenCacheShortLivedTokenNeverServed(t *testing.T) {
	cache := NewTokenCache(DefaultExpiryBuffer, (&testClock{now: time.Now()}).Now)
	cache.Set("short", 30*time.Second)

	_, ok := cache.Get()
	assert.False(t, ok)
}
