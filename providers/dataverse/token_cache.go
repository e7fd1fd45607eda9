package dataverse

import (
	"sync"
	"time"
)

// DefaultExpiryBuffer is how long before expiry a token stops being served.
const DefaultExpiryBuffer = 60 * time.Second

// Clock returns the current time. Tests swap it for a fixed clock.
type Clock func() time.Time

type CachedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenCache holds at most one bearer token for a client.
type TokenCache struct {
	mu     sync.RWMutex
	token  *CachedToken
	buffer time.Duration
	now    Clock
}

func NewTokenCache(buffer time.Duration, clock Clock) *TokenCache {
	if clock == nil {
		clock = time.Now
	}
	if buffer < 0 {
		buffer = 0
	}
	return &TokenCache{
		buffer: buffer,
		now:    clock,
	}
}

// Get returns the cached token while now + buffer is still before its expiry.
func (c *TokenCache) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == nil || c.token.AccessToken == "" {
		return "", false
	}
	if !c.now().Add(c.buffer).Before(c.token.ExpiresAt) {
		return "", false
	}
	return c.token.AccessToken, true
}

// Set overwrites the cached token. expiresIn is relative to the cache clock.
func (c *TokenCache) Set(accessToken string, expiresIn time.Duration) CachedToken {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = &CachedToken{
		AccessToken: accessToken,
		ExpiresAt:   c.now().Add(expiresIn),
	}
	return *c.token
}

func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
}

// Peek returns the stored token even if it is inside the expiry buffer.
func (c *TokenCache) Peek() (CachedToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return CachedToken{}, false
	}
	return *c.token, true
}
