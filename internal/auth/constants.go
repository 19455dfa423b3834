package auth

const (
	ContextKeyUserID             = "user_id"
	ContextKeyUserEmail          = "user_email"
	ContextKeyUserRole           = "user_role"
	ContextKeyPermissions        = "permissions"
	ContextKeyRequiredPermission = "required_permission"

	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	authHeaderParts     = 2
)

const (
	msgAuthHeaderMissing    = "Authorization header missing"
	msgInvalidAuthScheme    = "Invalid authentication scheme"
	msgInvalidToken         = "Invalid token"
	msgTokenExpired         = "Token has expired"
	msgInvalidTokenKind     = "Invalid token type"
	msgUserNotAuthenticated = "user not authenticated"
	msgInvalidUserIDCtx     = "invalid user ID in context"

	msgInsufficientPermissionsFmt = "Insufficient permissions. Required: %s"

	errUnknownSigningAlgorithmFmt = "unknown signing algorithm: %s"
	errNonHMACSigningAlgorithmFmt = "signing algorithm %s is not HMAC-based"
	errUnexpectedSigningMethodFmt = "unexpected signing method: %v"
)
