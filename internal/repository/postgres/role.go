package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bouncer-service/internal/domain/user"
	apperrors "bouncer-service/pkg/errors"
)

type RoleRepository struct {
	db *DB
}

func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`
	return r.getRole(ctx, query, id)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*user.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`
	return r.getRole(ctx, query, name)
}

func (r *RoleRepository) getRole(ctx context.Context, query string, arg any) (*user.Role, error) {
	role := &user.Role{}
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errRoleNotFound)
		}
		return nil, errFailedGetRole(err)
	}

	return role, nil
}

// GetRolePermissions returns the permission names owned by a role through
// the role_permissions join table, in stable order.
func (r *RoleRepository) GetRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	query := `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.name
	`

	rows, err := r.db.Pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, errFailedGetRolePermissions(err)
	}
	defer rows.Close()

	permissions := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf(errFailedScanPermissionFmt, err)
		}
		permissions = append(permissions, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errIterateRolePermissionsFmt, err)
	}

	return permissions, nil
}
