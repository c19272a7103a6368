package keyfile

import (
	"crypto/rsa"
	"sync"
)

// PrivateKeySource yields the key used for one signing call.
type PrivateKeySource interface {
	PrivateKey() (*rsa.PrivateKey, error)
}

// Cache keeps the first successfully loaded key of its source.
// Failed loads are not cached, so a fixed key file is picked up on the
// next call.
type Cache struct {
	src PrivateKeySource

	mu  sync.Mutex
	key *rsa.PrivateKey
}

// NewCache wraps src with a load-once cache.
func NewCache(src PrivateKeySource) *Cache {
	return &Cache{src: src}
}

// PrivateKey returns the cached key, loading it from the source if needed.
func (c *Cache) PrivateKey() (*rsa.PrivateKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key, nil
	}
	key, err := c.src.PrivateKey()
	if err != nil {
		return nil, err
	}
	c.key = key
	return key, nil
}
