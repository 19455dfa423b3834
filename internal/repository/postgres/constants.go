package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound = "user not found"
	errRoleNotFound = "role not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt      = "failed to create user: %w"
	errFailedGetUserFmt         = "failed to get user: %w"
	errFailedListUsersFmt       = "failed to list users: %w"
	errFailedScanUserFmt        = "failed to scan user: %w"
	errIterateUsersFmt          = "error iterating users: %w"
	errFailedUpdateUserFmt      = "failed to update user: %w"
	errFailedUpdateLastLoginFmt = "failed to update last login: %w"

	errFailedGetRoleFmt            = "failed to get role: %w"
	errFailedGetRolePermissionsFmt = "failed to get role permissions: %w"
	errFailedScanPermissionFmt     = "failed to scan permission: %w"
	errIterateRolePermissionsFmt   = "error iterating role permissions: %w"
)

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf(errFailedParseDatabaseConfigFmt, err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf(errFailedCreateConnectionPoolFmt, err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf(errFailedPingDatabaseFmt, err)
}

func errFailedCreateUser(err error) error {
	return fmt.Errorf(errFailedCreateUserFmt, err)
}

func errFailedGetUser(err error) error {
	return fmt.Errorf(errFailedGetUserFmt, err)
}

func errFailedListUsers(err error) error {
	return fmt.Errorf(errFailedListUsersFmt, err)
}

func errFailedUpdateUser(err error) error {
	return fmt.Errorf(errFailedUpdateUserFmt, err)
}

func errFailedGetRole(err error) error {
	return fmt.Errorf(errFailedGetRoleFmt, err)
}

func errFailedGetRolePermissions(err error) error {
	return fmt.Errorf(errFailedGetRolePermissionsFmt, err)
}
