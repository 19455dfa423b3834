package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	tokenTypeBearer = "bearer"

	defaultRoleName = "user"

	defaultListLimit = 50
	maxListLimit     = 200

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidCredentials      = "Invalid email or password"
	msgAccountInactive         = "Account is deactivated"
	msgEmailAlreadyExists      = "Email already registered"
	msgPasswordProcessFail     = "failed to process password"
	msgGenerateTokenFail       = "failed to generate token"
	msgRegistrationFail        = "failed to create account"
	msgAvatarStorageDisabled   = "avatar storage is not configured"
	msgAvatarURLFail           = "failed to generate avatar upload URL"
	msgListUsersFail           = "failed to list users"
	msgListAuditEventsFail     = "failed to list audit events"
	msgInvalidActorID          = "actor_id must be a valid UUID"
	msgLogoutOK                = "Successfully logged out"
)
