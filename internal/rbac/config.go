package rbac

import (
	"fmt"
	"net/http"
)

// Config holds the static route-permission table and the routes exempt
// from both authentication and authorization. Entries are loaded once at
// process start; route patterns may contain named placeholders such as
// {booking_id}.
type Config struct {
	// Routes maps route pattern -> HTTP method -> required permission name
	Routes map[string]map[string]string
	// ExemptRoutes bypass the request gates entirely (login, health, docs)
	ExemptRoutes []string
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Validate checks internal consistency of the Config
func (c *Config) Validate() error {
	if len(c.Routes) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigRoutesEmpty)
	}

	for pattern, methods := range c.Routes {
		if pattern == "" {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigRoutePathEmptyFmt)
		}
		if pattern[0] != '/' {
			return fmt.Errorf("%w: "+errConfigRoutePathNoSlashFmt, ErrInvalidConfig, pattern)
		}
		if len(methods) == 0 {
			return fmt.Errorf("%w: "+errConfigRouteNoMethodsFmt, ErrInvalidConfig, pattern)
		}
		for method, permission := range methods {
			if !knownMethods[method] {
				return fmt.Errorf("%w: "+errConfigUnknownMethodFmt, ErrInvalidConfig, pattern, method)
			}
			if permission == "" {
				return fmt.Errorf("%w: "+errConfigPermissionEmptyFmt, ErrInvalidConfig, pattern, method)
			}
		}
	}

	seen := make(map[string]bool, len(c.ExemptRoutes))
	for _, route := range c.ExemptRoutes {
		if route == "" || route[0] != '/' {
			return fmt.Errorf("%w: "+errConfigExemptPathNoSlashFmt, ErrInvalidConfig, route)
		}
		if seen[route] {
			return fmt.Errorf("%w: "+errConfigDuplicateExemptFmt, ErrInvalidConfig, route)
		}
		seen[route] = true
	}

	return nil
}
