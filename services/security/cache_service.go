package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrCacheMiss = fmt.Errorf("value not found")

type Cache struct {
	c *cache.Cache
}

// NewCache creates a cache whose entries expire after defaultTTL and which
// purges expired items every cleanup interval.
func NewCache(defaultTTL, cleanup time.Duration) *Cache {
	return &Cache{
		c: cache.New(defaultTTL, cleanup),
	}
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

func (cm *Cache) InsertWithTTL(k string, x interface{}, ttl time.Duration) {
	cm.c.Set(k, x, ttl)
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, ErrCacheMiss
}

func (cm *Cache) Delete(key string) {
	cm.c.Delete(key)
}

func (cm *Cache) Count() int {
	return cm.c.ItemCount()
}

func (cm *Cache) Stop() error {
	cm.c.Flush()
	return nil
}
