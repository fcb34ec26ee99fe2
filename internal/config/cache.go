package config

import "time"

// CacheConfig defines settings for the response cache middleware.
// Caching applies to GET responses only; TTL bounds staleness and
// MaxBodyBytes caps the size of cached bodies.  Prefix namespaces the
// Redis keys so a cache flush cannot touch rate-limit state.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the cache settings from the environment.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
