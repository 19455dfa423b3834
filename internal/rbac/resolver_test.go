package rbac

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Routes: map[string]map[string]string{
			"/api/users/profile": {
				http.MethodGet: "read_own_profile",
				http.MethodPut: "update_own_profile",
			},
			"/api/bookings": {
				http.MethodGet:  "read_own_bookings",
				http.MethodPost: "create_booking",
			},
			"/api/bookings/{booking_id}": {
				http.MethodGet:    "read_own_bookings",
				http.MethodDelete: "cancel_own_booking",
			},
			"/api/bookings/{booking_id}/accept": {
				http.MethodPost: "accept_booking",
			},
			"/api/admin/users": {
				http.MethodGet: "manage_users",
			},
		},
		ExemptRoutes: []string{"/", "/health"},
	}
}

func TestResolveExactMatch(t *testing.T) {
	r := MustNewResolver(testConfig())

	permission, found := r.Resolve("/api/users/profile", http.MethodGet)
	assert.True(t, found)
	assert.Equal(t, "read_own_profile", permission)

	permission, found = r.Resolve("/api/bookings", http.MethodPost)
	assert.True(t, found)
	assert.Equal(t, "create_booking", permission)
}

func TestResolveNormalizedMatch(t *testing.T) {
	r := MustNewResolver(testConfig())

	// UUID segment normalizes to {id}, which does not equal {booking_id},
	// so this falls through to the pattern stage.
	permission, found := r.Resolve("/api/bookings/3fa85f64-5717-4562-b3fc-2c963f66afa6/accept", http.MethodPost)
	assert.True(t, found)
	assert.Equal(t, "accept_booking", permission)
}

func TestResolvePatternMatch(t *testing.T) {
	r := MustNewResolver(testConfig())

	tests := []struct {
		path       string
		method     string
		permission string
		found      bool
	}{
		{"/api/bookings/42", http.MethodGet, "read_own_bookings", true},
		{"/api/bookings/42", http.MethodDelete, "cancel_own_booking", true},
		{"/api/bookings/abc-def", http.MethodGet, "read_own_bookings", true},
		{"/api/bookings/42/accept", http.MethodPost, "accept_booking", true},
		// matching pattern but unlisted method
		{"/api/bookings/42/accept", http.MethodGet, "", false},
	}

	for _, tt := range tests {
		permission, found := r.Resolve(tt.path, tt.method)
		assert.Equal(t, tt.found, found, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.permission, permission, "%s %s", tt.method, tt.path)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := MustNewResolver(testConfig())

	permission, found := r.Resolve("/api/unknown/route", http.MethodGet)
	assert.False(t, found)
	assert.Empty(t, permission)
}

func TestResolveUnlistedMethodOnExactRoute(t *testing.T) {
	r := MustNewResolver(testConfig())

	permission, found := r.Resolve("/api/users/profile", http.MethodDelete)
	assert.False(t, found)
	assert.Empty(t, permission)
}

func TestReloadSwapsTable(t *testing.T) {
	r := MustNewResolver(testConfig())

	_, found := r.Resolve("/api/admin/users", http.MethodGet)
	require.True(t, found)

	err := r.Reload(Config{
		Routes: map[string]map[string]string{
			"/api/reports": {http.MethodGet: "view_reports"},
		},
	})
	require.NoError(t, err)

	_, found = r.Resolve("/api/admin/users", http.MethodGet)
	assert.False(t, found)

	permission, found := r.Resolve("/api/reports", http.MethodGet)
	assert.True(t, found)
	assert.Equal(t, "view_reports", permission)
}

func TestReloadRejectsInvalidConfigAndKeepsOldTable(t *testing.T) {
	r := MustNewResolver(testConfig())

	err := r.Reload(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	permission, found := r.Resolve("/api/users/profile", http.MethodGet)
	assert.True(t, found)
	assert.Equal(t, "read_own_profile", permission)
}

func TestNewResolverInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty routes", Config{}},
		{"missing leading slash", Config{Routes: map[string]map[string]string{
			"api/x": {http.MethodGet: "p"},
		}}},
		{"unknown method", Config{Routes: map[string]map[string]string{
			"/api/x": {"FETCH": "p"},
		}}},
		{"empty permission", Config{Routes: map[string]map[string]string{
			"/api/x": {http.MethodGet: ""},
		}}},
		{"duplicate exempt route", Config{
			Routes:       map[string]map[string]string{"/api/x": {http.MethodGet: "p"}},
			ExemptRoutes: []string{"/health", "/health"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestCompilePatternQuotesLiterals(t *testing.T) {
	re, err := compilePattern("/api/v1.0/items/{item_id}")
	require.NoError(t, err)

	assert.True(t, re.MatchString("/api/v1.0/items/7"))
	// the dot must not match arbitrary characters
	assert.False(t, re.MatchString("/api/v1x0/items/7"))
	// placeholder must not span segments
	assert.False(t, re.MatchString("/api/v1.0/items/7/extra"))
}

// Two placeholder patterns can match the same path; the pattern stage
// must pick the same winner no matter how the table map iterated.
func TestResolvePatternOrderIsDeterministic(t *testing.T) {
	cfg := Config{
		Routes: map[string]map[string]string{
			"/api/things/{beta}":  {http.MethodGet: "beta_permission"},
			"/api/things/{alpha}": {http.MethodGet: "alpha_permission"},
		},
	}

	for i := 0; i < 50; i++ {
		r := MustNewResolver(cfg)

		permission, found := r.Resolve("/api/things/abc", http.MethodGet)
		require.True(t, found)
		assert.Equal(t, "alpha_permission", permission)
	}
}
