package config

import "time"

// RateLimitConfig defines settings for the request rate limiter.  The
// limiter counts requests per client IP and route in fixed windows of
// Window length, allowing Requests per window.  Prefix namespaces the
// Redis keys.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
	Prefix   string
}

// LoadRateLimitConfig reads the rate limiter settings from the
// environment, with defaults suitable for an interactive box office.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:  envBool("RATE_LIMIT_ENABLED", true),
		Requests: envInt("RATE_LIMIT_REQUESTS", 60),
		Window:   envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:   getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Requests < 1 {
		cfg.Requests = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
