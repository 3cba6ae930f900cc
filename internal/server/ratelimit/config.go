package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

const envPrefix = "RATE_LIMIT_"

// LoadConfig reads RATE_LIMIT_* environment variables over the defaults.
// Malformed values keep their default.
//
// RATE_LIMIT_ENDPOINTS overrides or adds endpoint limits as a comma-separated
// list of "METHOD PATH=LIMIT/WINDOW[:BURST]", e.g. "POST /v1/format=30/1m:5".
func LoadConfig() *Config {
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup func(string) (string, bool)) *Config {
	env := envReader{lookup: lookup}
	if !env.boolean("ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if raw := env.str("ENDPOINTS"); raw != "" {
		endpoints = mergeEndpoints(endpoints, ParseEndpoints(raw))
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     env.duration("IDLE_TIMEOUT", time.Hour),
		Whitelist:       ipSet(env.str("WHITELIST")),
		Blacklist:       ipSet(env.str("BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Document conversion is CPU bound (strictest limits)
		{Path: "/v1/format", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/v1/parse", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Token exchange runs bcrypt and is a brute-force target
		{Path: "/v1/auth/token", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Run history
		{Path: "/v1/runs/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 5},

		// Reads fall through to the default limit; /health is unlimited (see MatchEndpoint)
	}
}

// ParseEndpoints parses "METHOD PATH=LIMIT/WINDOW[:BURST]" items separated by
// commas. Malformed items are skipped.
func ParseEndpoints(raw string) []EndpointConfig {
	var out []EndpointConfig
	for _, item := range strings.Split(raw, ",") {
		if cfg, ok := parseEndpoint(strings.TrimSpace(item)); ok {
			out = append(out, cfg)
		}
	}
	return out
}

func parseEndpoint(item string) (EndpointConfig, bool) {
	route, spec, ok := strings.Cut(item, "=")
	if !ok {
		return EndpointConfig{}, false
	}
	fields := strings.Fields(route)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "/") {
		return EndpointConfig{}, false
	}

	spec, burstStr, hasBurst := strings.Cut(strings.TrimSpace(spec), ":")
	limitStr, windowStr, ok := strings.Cut(spec, "/")
	if !ok {
		return EndpointConfig{}, false
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		return EndpointConfig{}, false
	}
	window, err := time.ParseDuration(windowStr)
	if err != nil || window <= 0 {
		return EndpointConfig{}, false
	}

	cfg := EndpointConfig{
		Method: strings.ToUpper(fields[0]),
		Path:   fields[1],
		Limit:  limit,
		Window: window,
	}
	if hasBurst {
		if cfg.Burst, err = strconv.Atoi(burstStr); err != nil || cfg.Burst < 0 {
			return EndpointConfig{}, false
		}
	}
	return cfg, true
}

// mergeEndpoints replaces base entries with the same method and path and appends the rest
func mergeEndpoints(base, overrides []EndpointConfig) []EndpointConfig {
	merged := append([]EndpointConfig(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i := range merged {
			if merged[i].Method == o.Method && merged[i].Path == o.Path {
				merged[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}
	return merged
}

// envReader reads prefixed environment variables with typed defaults
type envReader struct {
	lookup func(string) (string, bool)
}

func (e envReader) str(key string) string {
	v, _ := e.lookup(envPrefix + key)
	return strings.TrimSpace(v)
}

func (e envReader) integer(key string, def int) int {
	if n, err := strconv.Atoi(e.str(key)); err == nil {
		return n
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	if b, err := strconv.ParseBool(e.str(key)); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key)); err == nil {
		return d
	}
	return def
}

// ipSet splits a comma-separated address list
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
