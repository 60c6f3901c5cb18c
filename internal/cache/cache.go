package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024

	// DefaultCleanupInterval is how often expired in-process entries are purged.
	DefaultCleanupInterval = time.Minute
)

// Cache is the byte level store JSONCache sits on. *freecache.Cache implements it.
type Cache interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte, expireSeconds int) error
	Del(key []byte) bool
}

var _ Cache = (*freecache.Cache)(nil)

// JSONCache keeps JSON encoded values for a fixed time.
type JSONCache struct {
	store         Cache
	expireSeconds int
}

func NewJSONCache(store Cache, ttl time.Duration) *JSONCache {
	expire := int(ttl / time.Second)
	if expire < 1 {
		expire = 1
	}
	return &JSONCache{
		store:         store,
		expireSeconds: expire,
	}
}

// NewFreeCache builds a JSONCache on an in-process freecache of the given size.
func NewFreeCache(sizeMegabytes int, ttl time.Duration) *JSONCache {
	return NewJSONCache(freecache.NewCache(sizeMegabytes*megabyte), ttl)
}

// Get decodes the cached value into dst and reports whether it was found.
func (c *JSONCache) Get(key string, dst any) bool {
	raw, err := c.store.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("cache get %s: %s", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Errorf("cache unmarshal %s: %s", key, err)
		c.store.Del([]byte(key))
		return false
	}
	return true
}

func (c *JSONCache) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Errorf("cache marshal %s: %s", key, err)
		return
	}
	if err := c.store.Set([]byte(key), raw, c.expireSeconds); err != nil {
		log.Errorf("cache set %s: %s", key, err)
	}
}

func (c *JSONCache) Delete(key string) {
	c.store.Del([]byte(key))
}

// NewExpiring returns an in-process object cache whose janitor purges expired
// entries every cleanupEvery, or every DefaultCleanupInterval when unset.
func NewExpiring(ttl, cleanupEvery time.Duration) *gocache.Cache {
	if cleanupEvery <= 0 {
		cleanupEvery = DefaultCleanupInterval
	}
	return gocache.New(ttl, cleanupEvery)
}
