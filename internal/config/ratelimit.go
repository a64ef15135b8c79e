package config

import "time"

// RateLimitConfig configures the Redis token bucket.  Two buckets are built
// from it: the general one and a stricter one for credential and anonymous
// vote endpoints (SensitiveCapacity).
type RateLimitConfig struct {
    Enabled           bool
    Capacity          int
    SensitiveCapacity int
    RefillTokens      int
    RefillInterval    time.Duration
    TTL               time.Duration
    KeyStrategy       string
    Prefix            string
    Debug             bool
}

func LoadRateLimitConfig() RateLimitConfig {
    def := RateLimitConfig{
        Enabled:           envBool("RATE_LIMIT_ENABLED", true),
        Capacity:          envInt("RATE_LIMIT_CAPACITY", 60),
        SensitiveCapacity: envInt("RATE_LIMIT_SENSITIVE_CAPACITY", 10),
        RefillTokens:      envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval:    envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:               envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:       envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:            envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:             envBool("RATE_LIMIT_DEBUG", false),
    }
    if def.Capacity < 1 { def.Capacity = 1 }
    if def.SensitiveCapacity < 1 { def.SensitiveCapacity = 1 }
    if def.RefillTokens < 1 { def.RefillTokens = 1 }
    if def.RefillInterval <= 0 { def.RefillInterval = time.Second }
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL { def.TTL = minTTL }
    return def
}

// Sensitive returns a copy of the config using the stricter capacity and a
// separate key prefix so both buckets never share state.
func (c RateLimitConfig) Sensitive() RateLimitConfig {
    s := c
    s.Capacity = c.SensitiveCapacity
    s.Prefix = c.Prefix + ":sensitive"
    s.KeyStrategy = "ip_route"
    return s
}
