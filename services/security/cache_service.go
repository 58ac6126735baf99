package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is the in-process session-security cache. The auth middleware
// uses it to remember recently-seen block flags so a blocked account's
// live tokens die quickly without a store round trip per request.
type Cache struct {
	c *cache.Cache
}

func NewCache() *Cache {
	// Default expiration of 1 minute keeps a stale unblock short-lived;
	// expired items purge every 5 minutes.
	return &Cache{
		c: cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

func (cm *Cache) Delete(key string) {
	cm.c.Delete(key)
}

func (cm *Cache) Stop() error {
	cm.c.Flush()
	return nil
}
