package rbac

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid rbac config")
)

const (
	errConfigRoutesEmpty          = "rbac config: route table must not be empty"
	errConfigRoutePathEmptyFmt    = "rbac config: route pattern must not be empty"
	errConfigRoutePathNoSlashFmt  = "rbac config: route pattern %q must start with '/'"
	errConfigRouteNoMethodsFmt    = "rbac config: route %q has no methods"
	errConfigUnknownMethodFmt     = "rbac config: route %q references unknown HTTP method %q"
	errConfigPermissionEmptyFmt   = "rbac config: route %q method %s has an empty permission name"
	errConfigExemptPathNoSlashFmt = "rbac config: exempt route %q must start with '/'"
	errConfigDuplicateExemptFmt   = "rbac config: duplicate exempt route: %s"
	errCompileRoutePatternFmt     = "rbac config: route pattern %q does not compile: %w"
)
