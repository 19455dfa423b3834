// Package presets holds the static authorization data for the bouncer
// booking service: the route-permission table consumed by the request
// gates and the role/permission rows installed by the seed tool.
package presets

import (
	"net/http"

	"bouncer-service/internal/rbac"
)

// Booking returns the route-permission table for the booking API
func Booking() rbac.Config {
	return rbac.Config{
		Routes: map[string]map[string]string{
			// User routes
			"/api/users/profile": {
				http.MethodGet:   "read_own_profile",
				http.MethodPut:   "update_own_profile",
				http.MethodPatch: "update_own_profile",
			},
			"/api/users/profile/avatar-url": {
				http.MethodPost: "update_own_profile",
			},
			"/api/users/bookings": {
				http.MethodGet: "read_own_bookings",
			},

			// Booking routes
			"/api/bookings": {
				http.MethodGet:  "read_own_bookings",
				http.MethodPost: "create_booking",
			},
			"/api/bookings/{booking_id}": {
				http.MethodGet:    "read_own_bookings",
				http.MethodPut:    "cancel_own_booking",
				http.MethodDelete: "cancel_own_booking",
			},
			"/api/bookings/{booking_id}/accept": {
				http.MethodPost: "accept_booking",
			},
			"/api/bookings/{booking_id}/reject": {
				http.MethodPost: "reject_booking",
			},
			"/api/bookings/{booking_id}/status": {
				http.MethodPut: "update_booking_status",
			},
			"/api/bookings/{booking_id}/review": {
				http.MethodPost: "create_review",
			},

			// Bouncer routes
			"/api/bouncers/profile": {
				http.MethodGet:   "read_bouncer_profile",
				http.MethodPut:   "update_bouncer_profile",
				http.MethodPatch: "update_bouncer_profile",
			},
			"/api/bouncers/availability": {
				http.MethodGet:  "manage_availability",
				http.MethodPost: "manage_availability",
				http.MethodPut:  "manage_availability",
			},
			"/api/bouncers/bookings": {
				http.MethodGet: "read_assigned_bookings",
			},

			// Admin routes
			"/api/admin/users": {
				http.MethodGet:  "manage_users",
				http.MethodPost: "manage_users",
			},
			"/api/admin/users/{user_id}": {
				http.MethodGet:    "manage_users",
				http.MethodPut:    "manage_users",
				http.MethodDelete: "manage_users",
			},
			"/api/admin/bouncers": {
				http.MethodGet:  "manage_bouncers",
				http.MethodPost: "manage_bouncers",
			},
			"/api/admin/bookings": {
				http.MethodGet: "manage_bookings",
			},
			"/api/admin/reports": {
				http.MethodGet: "view_reports",
			},
			"/api/admin/audit-events": {
				http.MethodGet: "view_audit_log",
			},
		},
		ExemptRoutes: ExemptRoutes(),
	}
}

// ExemptRoutes are the paths that bypass authentication and authorization
func ExemptRoutes() []string {
	return []string{
		"/",
		"/health",
		"/api/docs",
		"/api/redoc",
		"/openapi.json",
		"/api/auth/login",
		"/api/auth/register",
		"/api/auth/refresh",
		"/api/auth/logout",
		"/api/auth/forgot-password",
		"/api/auth/reset-password",
	}
}

// SeedPermission is one permission row installed by the seed tool
type SeedPermission struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// SeedPermissions returns the full permission catalog
func SeedPermissions() []SeedPermission {
	return []SeedPermission{
		// User permissions
		{Name: "user:read", Resource: "user", Action: "read", Description: "View own profile"},
		{Name: "user:update", Resource: "user", Action: "update", Description: "Update own profile"},
		{Name: "user:delete", Resource: "user", Action: "delete", Description: "Delete own account"},

		// Booking permissions
		{Name: "booking:create", Resource: "booking", Action: "create", Description: "Create bookings"},
		{Name: "booking:read", Resource: "booking", Action: "read", Description: "View own bookings"},
		{Name: "booking:update", Resource: "booking", Action: "update", Description: "Update own bookings"},
		{Name: "booking:delete", Resource: "booking", Action: "delete", Description: "Cancel own bookings"},

		// Bouncer permissions
		{Name: "bouncer:read", Resource: "bouncer", Action: "read", Description: "View bouncer dashboard"},
		{Name: "bouncer:manage", Resource: "bouncer", Action: "manage", Description: "Manage bookings as bouncer"},
		{Name: "booking:read_all", Resource: "booking", Action: "read_all", Description: "View all bookings"},
		{Name: "booking:update_all", Resource: "booking", Action: "update_all", Description: "Update any booking"},

		// Route-level permissions referenced by the route table
		{Name: "read_own_profile", Resource: "user", Action: "read", Description: "Read own profile routes"},
		{Name: "update_own_profile", Resource: "user", Action: "update", Description: "Update own profile routes"},
		{Name: "read_own_bookings", Resource: "booking", Action: "read", Description: "Read own booking routes"},
		{Name: "create_booking", Resource: "booking", Action: "create", Description: "Create booking route"},
		{Name: "cancel_own_booking", Resource: "booking", Action: "delete", Description: "Cancel own booking routes"},
		{Name: "accept_booking", Resource: "booking", Action: "accept", Description: "Accept assigned bookings"},
		{Name: "reject_booking", Resource: "booking", Action: "reject", Description: "Reject assigned bookings"},
		{Name: "update_booking_status", Resource: "booking", Action: "update", Description: "Update booking status"},
		{Name: "create_review", Resource: "review", Action: "create", Description: "Review completed bookings"},
		{Name: "read_bouncer_profile", Resource: "bouncer", Action: "read", Description: "Read bouncer profile routes"},
		{Name: "update_bouncer_profile", Resource: "bouncer", Action: "update", Description: "Update bouncer profile routes"},
		{Name: "manage_availability", Resource: "bouncer", Action: "availability", Description: "Manage bouncer availability"},
		{Name: "read_assigned_bookings", Resource: "bouncer", Action: "bookings", Description: "Read assigned bookings"},
		{Name: "manage_users", Resource: "admin", Action: "manage_users", Description: "Manage all users"},
		{Name: "manage_bouncers", Resource: "admin", Action: "manage_bouncers", Description: "Manage all bouncers"},
		{Name: "manage_bookings", Resource: "admin", Action: "manage_bookings", Description: "Manage all bookings"},
		{Name: "view_reports", Resource: "admin", Action: "reports", Description: "View admin reports"},
		{Name: "view_audit_log", Resource: "admin", Action: "audit", Description: "View the authentication audit log"},

		// Admin permissions
		{Name: "admin:read", Resource: "admin", Action: "read", Description: "Access admin panel"},
		{Name: "admin:manage_roles", Resource: "admin", Action: "manage_roles", Description: "Manage roles and permissions"},
		{Name: "admin:system", Resource: "admin", Action: "system", Description: "System administration"},
	}
}

// SeedRolePermissions maps each role to the permission names it owns
func SeedRolePermissions() map[string][]string {
	return map[string][]string{
		"user": {
			"user:read", "user:update", "user:delete",
			"booking:create", "booking:read", "booking:update", "booking:delete",
			"read_own_profile", "update_own_profile",
			"read_own_bookings", "create_booking", "cancel_own_booking",
			"update_booking_status", "create_review",
		},
		"bouncer": {
			"user:read", "user:update",
			"booking:create", "booking:read", "booking:update", "booking:delete",
			"bouncer:read", "bouncer:manage", "booking:read_all", "booking:update_all",
			"read_own_profile", "update_own_profile",
			"read_own_bookings", "cancel_own_booking",
			"read_bouncer_profile", "update_bouncer_profile",
			"manage_availability", "read_assigned_bookings",
			"accept_booking", "reject_booking", "update_booking_status",
		},
		"admin": {
			"user:read", "user:update", "user:delete",
			"booking:create", "booking:read", "booking:update", "booking:delete",
			"booking:read_all", "booking:update_all",
			"bouncer:read", "bouncer:manage",
			"admin:read", "admin:manage_roles", "admin:system",
			"read_own_profile", "update_own_profile", "read_own_bookings",
			"create_booking", "cancel_own_booking", "update_booking_status",
			"manage_users", "manage_bouncers", "manage_bookings", "view_reports",
			"view_audit_log",
		},
	}
}
