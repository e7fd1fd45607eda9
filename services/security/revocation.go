package security

import (
	"time"
)

// RevocationList remembers logged out session tokens until they would have
// expired anyway.
type RevocationList struct {
	cache *Cache
}

func NewRevocationList() *RevocationList {
	return &RevocationList{
		cache: NewCache(time.Hour, 10*time.Minute),
	}
}

func (r *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return
	}
	r.cache.InsertWithTTL(tokenID, struct{}{}, ttl)
}

func (r *RevocationList) IsRevoked(tokenID string) bool {
	_, err := r.cache.Get(tokenID)
	return err == nil
}
