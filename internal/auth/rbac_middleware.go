package auth

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"bouncer-service/internal/rbac"
)

// RBACMiddleware is the authorization gate. It runs after Authenticate,
// resolves the permission a route requires, and checks it against the
// caller's permission set. Routes without a table entry need nothing
// beyond authentication.
type RBACMiddleware struct {
	resolver *rbac.Resolver
	exempt   map[string]bool
}

func NewRBACMiddleware(resolver *rbac.Resolver, exemptRoutes []string) *RBACMiddleware {
	exempt := make(map[string]bool, len(exemptRoutes))
	for _, route := range exemptRoutes {
		exempt[route] = true
	}
	return &RBACMiddleware{resolver: resolver, exempt: exempt}
}

func (m *RBACMiddleware) Authorize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if m.exempt[req.URL.Path] || req.Method == http.MethodOptions {
				return next(c)
			}

			required, found := m.resolver.Resolve(req.URL.Path, req.Method)

			// expose the resolved requirement to downstream handlers
			c.Set(ContextKeyRequiredPermission, required)

			if !found || required == "" {
				return next(c)
			}

			permissions := GetPermissions(c)
			if !hasPermission(permissions, required) {
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Detail:             fmt.Sprintf(msgInsufficientPermissionsFmt, required),
					RequiredPermission: required,
					UserPermissions:    permissions,
				})
			}

			return next(c)
		}
	}
}

// forbiddenResponse includes the requirement and the caller's permission
// set for diagnosability.
type forbiddenResponse struct {
	Detail             string   `json:"detail"`
	RequiredPermission string   `json:"required_permission"`
	UserPermissions    []string `json:"user_permissions"`
}

func hasPermission(permissions []string, required string) bool {
	for _, perm := range permissions {
		if perm == required {
			return true
		}
	}
	return false
}
