package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route. A Path ending in "/" also covers every
// path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment variables.
// Malformed values are ignored in favor of the defaults.
func LoadConfig() *Config {
	env := envLookup(os.Getenv)
	if !env.getBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	parse := &endpoints[0]
	parse.Limit = env.getInt("RATE_LIMIT_PARSE_LIMIT", parse.Limit)
	parse.Burst = env.getInt("RATE_LIMIT_PARSE_BURST", parse.Burst)

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.getInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.getDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.getDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(env("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the per-route limits. The parse route comes first.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// parsing reads and scans the whole upload
		{Path: "/api/resumes/parse", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/resumes/parse/", Method: "GET", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

type envLookup func(key string) string

func (e envLookup) getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(e(key)); err == nil {
		return n
	}
	return fallback
}

func (e envLookup) getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(e(key)); err == nil {
		return b
	}
	return fallback
}

func (e envLookup) getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(e(key)); err == nil {
		return d
	}
	return fallback
}

// parseIPList turns "a, b,c" into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
