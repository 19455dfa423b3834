package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "uuid segment",
			path: "/api/bookings/3fa85f64-5717-4562-b3fc-2c963f66afa6",
			want: "/api/bookings/{id}",
		},
		{
			name: "uuid segment mid path",
			path: "/api/bookings/3fa85f64-5717-4562-b3fc-2c963f66afa6/accept",
			want: "/api/bookings/{id}/accept",
		},
		{
			name: "uppercase uuid",
			path: "/api/users/3FA85F64-5717-4562-B3FC-2C963F66AFA6",
			want: "/api/users/{id}",
		},
		{
			name: "numeric segment",
			path: "/api/bookings/42",
			want: "/api/bookings/{id}",
		},
		{
			name: "first numeric segment wins",
			path: "/api/bookings/42/items/7",
			want: "/api/bookings/{id}/items/7",
		},
		{
			name: "no id falls back to last segment",
			path: "/api/users/profile",
			want: "/api/users/{id}",
		},
		{
			name: "already normalized is unchanged",
			path: "/api/bookings/{id}/accept",
			want: "/api/bookings/{id}/accept",
		},
		{
			name: "trailing slash",
			path: "/api/bookings/",
			want: "/api/{id}/",
		},
		{
			name: "mixed alphanumeric is not numeric",
			path: "/api/bookings/abc123",
			want: "/api/bookings/{id}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	paths := []string{
		"/api/bookings/3fa85f64-5717-4562-b3fc-2c963f66afa6/accept",
		"/api/bookings/42",
		"/api/users/profile",
	}

	for _, path := range paths {
		once := NormalizePath(path)
		assert.Equal(t, once, NormalizePath(once), "path %q", path)
	}
}

func TestIsAllDigits(t *testing.T) {
	assert.True(t, isAllDigits("12345"))
	assert.False(t, isAllDigits("12a45"))
	assert.False(t, isAllDigits("½"))
	assert.True(t, isAllDigits(""))
}
