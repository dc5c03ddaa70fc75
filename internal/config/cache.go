package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// CacheConfig controls the Redis response cache that sits in front of the
// public invitation lookups.  Guest and event data change rarely (a guest
// edits their RSVP once, the admin tweaks capacities a handful of times),
// so short-lived caching of GET responses absorbs the traffic spike when
// the invitation link circulates.  When Enabled is false or no Redis client
// is available, the middleware becomes a no-op.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from environment variables, falling
// back to defaults suited to the invitation payloads (small JSON bodies,
// 60s freshness).
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      getenv("CACHE_ENABLED", "true") == "true",
        Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
        TTL:          parseDur(getenv("CACHE_TTL", "60s")),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "inv_cache"),
        MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "262144")),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}

// getenv/atoi/parseDur are shared with config.go and ratelimit.go.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Second
    }
    return d
}
