package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bouncer-service/internal/audit"
	"bouncer-service/internal/domain/user"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// AuthHandler interfaces
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.Role, error)
	GetByName(ctx context.Context, name string) (*user.Role, error)
}

// PermissionSource resolves a role's permission names at token-mint time.
// In production this is the cache-wrapped postgres lookup.
type PermissionSource interface {
	GetRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

// AuditRecorder records authentication events asynchronously
type AuditRecorder interface {
	Record(c echo.Context, action audit.Action, status audit.Status, actorID *uuid.UUID, email string)
}

// UserHandler interfaces
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input user.UpdateProfileInput) (*user.User, error)
}

// AvatarURLSigner issues presigned upload and download URLs for avatar
// objects. Nil when avatar storage is not configured.
type AvatarURLSigner interface {
	AvatarUploadURL(ctx context.Context, userID, contentType string) (url, key string, err error)
	AvatarDownloadURL(ctx context.Context, userID string) (string, error)
}

// AdminHandler interfaces
type UserLister interface {
	List(ctx context.Context, limit, offset int) ([]*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuditReader pages through recorded authentication events
type AuditReader interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]*audit.Event, error)
}
