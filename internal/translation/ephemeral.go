package translation

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/viccon/sturdyc"

	"lingye.co/catalog/internal/language"
)

const (
	defaultCacheShards        = 10
	defaultEvictionPercentage = 10
	defaultCacheTTL           = time.Hour
)

// EphemeralCache memoizes single-string translations for a bounded time.
// Entries may vanish at any moment; nothing reads it for correctness.
type EphemeralCache interface {
	Get(text, targetLang string) (string, bool)
	Put(text, targetLang, translated string)
}

// MemoryCache is an in-process EphemeralCache backed by sturdyc.
type MemoryCache struct {
	client *sturdyc.Client[string]
	shards int
}

// NewMemoryCache clamps capacity to at least one entry and uses a single
// shard when capacity is below the shard count. A non-positive ttl means one
// hour.
func NewMemoryCache(capacity int, ttl time.Duration, opts ...sturdyc.Option) *MemoryCache {
	if capacity < 1 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	shards := defaultCacheShards
	if capacity < shards {
		shards = 1
	}
	return &MemoryCache{
		client: sturdyc.New[string](capacity, shards, ttl, defaultEvictionPercentage, opts...),
		shards: shards,
	}
}

func (c *MemoryCache) Get(text, targetLang string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	return c.client.Get(ephemeralKey(text, targetLang))
}

func (c *MemoryCache) Put(text, targetLang, translated string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ephemeralKey(text, targetLang), translated)
}

// ephemeralKey is a fixed-length digest of the text plus the target code, so
// long descriptions do not inflate the key space.
func ephemeralKey(text, targetLang string) string {
	sum := sha256.Sum256([]byte(text))
	return "translation_" + hex.EncodeToString(sum[:]) + "_" + language.Base(targetLang)
}

// NoopCache disables the ephemeral tier.
type NoopCache struct{}

func (NoopCache) Get(string, string) (string, bool) { return "", false }
func (NoopCache) Put(string, string, string)        {}
