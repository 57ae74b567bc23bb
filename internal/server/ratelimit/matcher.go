package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedRoutes are exempt from limiting. CORS preflights are exempt as well.
var unlimitedRoutes = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint returns the config for a request. An exact path wins over the longest
// matching prefix entry. Exempt routes get a zero Limit; unknown routes return nil.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || unlimitedRoutes[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if prefix == nil || len(c.Path) > len(prefix.Path) {
				prefix = c
			}
		}
	}
	return prefix
}
