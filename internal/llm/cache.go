package llm

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache keeps generated text for identical requests.
type Cache struct {
	lru *expirable.LRU[string, string]
}

// NewCache returns nil when size is not positive; a nil *Cache is a valid, always-missing cache.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		return nil
	}
	return &Cache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *Cache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.lru.Get(key)
}

func (c *Cache) Add(key, text string) {
	if c == nil {
		return
	}
	c.lru.Add(key, text)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey hashes the resolved request body so that defaults applied by the client are part of the key.
func cacheKey(body chatCompletionRequest) string {
	raw, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(raw))
}
