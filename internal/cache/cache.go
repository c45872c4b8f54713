package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const minSizeBytes = 512 * 1024 // freecache's own lower bound

// JSONCache keeps JSON encoded values in a freecache instance. Values come back as
// fresh copies, so callers may mutate what they get.
type JSONCache[T any] struct {
	cache *freecache.Cache
	ttl   time.Duration
}

func NewJSONCache[T any](sizeMB int, ttl time.Duration) *JSONCache[T] {
	size := sizeMB * 1024 * 1024
	if size < minSizeBytes {
		size = minSizeBytes
	}
	return &JSONCache[T]{
		cache: freecache.NewCache(size),
		ttl:   ttl,
	}
}

func (c *JSONCache[T]) Get(key string) (*T, bool) {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("cache get [%s]: %s", key, err)
		}
		return nil, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Errorf("cache decode [%s]: %s", key, err)
		c.cache.Del([]byte(key))
		return nil, false
	}
	return &value, true
}

func (c *JSONCache[T]) Set(key string, value *T) {
	if value == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("cache encode [%s]: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), raw, c.expireSeconds()); err != nil {
		// too large entries are just not cached
		log.Warnf("cache set [%s]: %s", key, err)
	}
}

func (c *JSONCache[T]) Delete(key string) {
	c.cache.Del([]byte(key))
}

func (c *JSONCache[T]) Clear() {
	c.cache.Clear()
}

func (c *JSONCache[T]) Len() int64 {
	return c.cache.EntryCount()
}

// expireSeconds maps the ttl to freecache's expiry, where 0 means no expiry.
func (c *JSONCache[T]) expireSeconds() int {
	if c.ttl <= 0 {
		return 0
	}
	secs := int(c.ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
