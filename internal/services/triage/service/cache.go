package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"triage/internal/core/langhint"
	"triage/internal/services/triage/domain"
)

// Result cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = time.Hour
)

// resultCache is the content-addressed classification cache: bounded LRU with
// per-entry TTL. Values are full responses, so a hit skips the whole
// pipeline.
type resultCache struct {
	lru    *expirable.LRU[string, domain.PreprocessOutput]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &resultCache{
		lru: expirable.NewLRU[string, domain.PreprocessOutput](size, nil, ttl),
	}
}

// cacheKey hashes everything that can change the response: the lemmatized
// text plus the language override. Two surface forms that lemmatize the same
// way share an entry.
func cacheKey(lemmatized string, lang langhint.Lang) string {
	h := sha256.New()
	h.Write([]byte(lemmatized))
	h.Write([]byte{0})
	h.Write([]byte(lang))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *resultCache) get(key string) (domain.PreprocessOutput, bool) {
	out, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return out, ok
}

func (c *resultCache) put(key string, out domain.PreprocessOutput) {
	c.lru.Add(key, out)
}

func (c *resultCache) len() int { return c.lru.Len() }
