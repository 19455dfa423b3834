// Command seed creates the database schema and installs the static role
// and permission rows. It is idempotent and safe to re-run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"bouncer-service/internal/config"
	"bouncer-service/internal/rbac/presets"
	"bouncer-service/internal/repository/postgres"
)

const schemaFile = "database/schema.sql"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("=== Setting Up Database ===")
	fmt.Println()

	ctx := context.Background()

	db, err := postgres.New(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("Connected to database")

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	if _, err := db.Pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}
	fmt.Println("Schema executed")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("Failed to seed permissions: %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("Failed to seed role permissions: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Database Setup Complete ===")
}

var roleDescriptions = map[string]string{
	"user":    "Registered customer who books bouncers",
	"bouncer": "Service provider who accepts bookings",
	"admin":   "Platform administrator",
}

func seedRoles(ctx context.Context, db *postgres.DB) error {
	for name := range presets.SeedRolePermissions() {
		query := `
			INSERT INTO roles (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`

		if _, err := db.Pool.Exec(ctx, query, name, roleDescriptions[name]); err != nil {
			return fmt.Errorf("role %q: %w", name, err)
		}
		fmt.Printf("Role %q installed\n", name)
	}
	return nil
}

func seedPermissions(ctx context.Context, db *postgres.DB) error {
	for _, p := range presets.SeedPermissions() {
		query := `
			INSERT INTO permissions (name, resource, action, description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE
			SET resource = EXCLUDED.resource,
			    action = EXCLUDED.action,
			    description = EXCLUDED.description`

		if _, err := db.Pool.Exec(ctx, query, p.Name, p.Resource, p.Action, p.Description); err != nil {
			return fmt.Errorf("permission %q: %w", p.Name, err)
		}
	}
	fmt.Printf("%d permissions installed\n", len(presets.SeedPermissions()))
	return nil
}

func seedRolePermissions(ctx context.Context, db *postgres.DB) error {
	for role, permissions := range presets.SeedRolePermissions() {
		for _, permission := range permissions {
			query := `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT r.id, p.id
				FROM roles r, permissions p
				WHERE r.name = $1 AND p.name = $2
				ON CONFLICT DO NOTHING`

			if _, err := db.Pool.Exec(ctx, query, role, permission); err != nil {
				return fmt.Errorf("role %q permission %q: %w", role, permission, err)
			}
		}
		fmt.Printf("Role %q granted %d permissions\n", role, len(permissions))
	}
	return nil
}
