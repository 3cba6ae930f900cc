package ratelimit

import (
	"strings"
)

// healthPath is never rate limited
const healthPath = "/health"

// MatchEndpoint matches a request path and method to an endpoint configuration.
// An exact path wins; otherwise the longest configured prefix ending in "/"
// wins (e.g., "/v1/runs/" matches "/v1/runs/{id}"). Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == healthPath && method == "GET" {
		return &EndpointConfig{Limit: 0} // Unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
