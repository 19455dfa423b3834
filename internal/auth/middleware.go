package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "bouncer-service/pkg/errors"
)

// Middleware authenticates inbound requests. Exempt routes and CORS
// preflight requests bypass the gate entirely; everything else must
// present a valid Bearer access token.
type Middleware struct {
	tokens *TokenService
	exempt map[string]bool
}

func NewMiddleware(tokens *TokenService, exemptRoutes []string) *Middleware {
	exempt := make(map[string]bool, len(exemptRoutes))
	for _, route := range exemptRoutes {
		exempt[route] = true
	}
	return &Middleware{tokens: tokens, exempt: exempt}
}

func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if m.exempt[req.URL.Path] || req.Method == http.MethodOptions {
				return next(c)
			}

			header := req.Header.Get(headerAuthorization)
			if header == "" {
				return respondDetail(c, http.StatusUnauthorized, msgAuthHeaderMissing)
			}

			parts := strings.Fields(header)
			if len(parts) != authHeaderParts || !strings.EqualFold(parts[0], bearerScheme) {
				return respondDetail(c, http.StatusUnauthorized, msgInvalidAuthScheme)
			}

			claims, err := m.tokens.Verify(parts[1], TokenKindAccess)
			if err != nil {
				return respondDetail(c, http.StatusUnauthorized, DenyDetail(err))
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)
			c.Set(ContextKeyPermissions, claims.Permissions)

			return next(c)
		}
	}
}

// detailResponse is the denied-response body for authentication failures
type detailResponse struct {
	Detail string `json:"detail"`
}

func respondDetail(c echo.Context, status int, detail string) error {
	return c.JSON(status, detailResponse{Detail: detail})
}

// Identity is the request-scoped identity attached by Authenticate and
// enriched by the RBAC gate. It lives for one request only.
type Identity struct {
	UserID             string
	Email              string
	Role               string
	Permissions        []string
	RequiredPermission string
}

// CurrentIdentity assembles the identity from the request context without
// re-parsing the token.
func CurrentIdentity(c echo.Context) (*Identity, error) {
	userID, ok := c.Get(ContextKeyUserID).(string)
	if !ok || userID == "" {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	identity := &Identity{
		UserID:      userID,
		Permissions: []string{},
	}
	if email, ok := c.Get(ContextKeyUserEmail).(string); ok {
		identity.Email = email
	}
	if role, ok := c.Get(ContextKeyUserRole).(string); ok {
		identity.Role = role
	}
	if perms, ok := c.Get(ContextKeyPermissions).([]string); ok && perms != nil {
		identity.Permissions = perms
	}
	if required, ok := c.Get(ContextKeyRequiredPermission).(string); ok {
		identity.RequiredPermission = required
	}

	return identity, nil
}

// GetUserID returns the authenticated subject id as a UUID
func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(ContextKeyUserID).(string)
	if !ok || userID == "" {
		return uuid.Nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized(msgInvalidUserIDCtx)
	}

	return id, nil
}

// GetPermissions returns the caller's permission list, never nil
func GetPermissions(c echo.Context) []string {
	if perms, ok := c.Get(ContextKeyPermissions).([]string); ok && perms != nil {
		return perms
	}
	return []string{}
}
