package repository

import (
	"context"

	"github.com/google/uuid"

	"bouncer-service/internal/domain/user"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input user.UpdateProfileInput) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*user.User, error)
}

// RoleRepository defines role and permission data access operations. The
// request pipeline reads role permissions once at login time; the join
// table itself is seed-time state and read-only here.
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.Role, error)
	GetByName(ctx context.Context, name string) (*user.Role, error)
	GetRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

// RolePermissionSource is the narrow read used when minting tokens. The
// cache layer wraps it; the postgres RoleRepository satisfies it.
type RolePermissionSource interface {
	GetRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)
}
