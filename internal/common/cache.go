package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Lookup returns the cached value under key when it holds a T.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	t, ok := v.(T)
	if !ok {
		return zero, false
	}

	return t, true
}

func (c *Cache) Delete(keys ...string) {
	for _, k := range keys {
		c.Cache.Delete(k)
	}
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

const CacheKeyBlogStats = "blog_stats"

func CacheKeyUser(id int) string {
	return "user:" + strconv.Itoa(id)
}
