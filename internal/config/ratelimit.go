package config

import (
    "os"
    "strings"
    "time"
)

// RateLimitConfig controls the token-bucket limiter applied to the hold and
// confirm endpoints.  Disabled by default so local development works without
// Redis.
type RateLimitConfig struct {
    Enabled        bool          // RATE_LIMIT_ENABLED
    Prefix         string        // key prefix in Redis
    Capacity       int           // bucket size (burst)
    RefillTokens   int           // tokens added per interval
    RefillInterval time.Duration // refill cadence
    TTL            time.Duration // idle bucket expiry
}

// LoadRateLimit reads the limiter settings from the environment.
func LoadRateLimit() RateLimitConfig {
    enabled := strings.EqualFold(os.Getenv("RATE_LIMIT_ENABLED"), "true") ||
        os.Getenv("RATE_LIMIT_ENABLED") == "1"
    return RateLimitConfig{
        Enabled:        enabled,
        Prefix:         "rl:ticket",
        Capacity:       intOr("RATE_LIMIT_CAPACITY", 20),
        RefillTokens:   intOr("RATE_LIMIT_REFILL_TOKENS", 10),
        RefillInterval: time.Duration(intOr("RATE_LIMIT_REFILL_SEC", 1)) * time.Second,
        TTL:            time.Duration(intOr("RATE_LIMIT_TTL_SEC", 120)) * time.Second,
    }
}
