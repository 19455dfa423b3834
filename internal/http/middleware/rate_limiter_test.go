package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncer-service/internal/auth"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"), "third request should exhaust the burst")
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	perform := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	rec := perform()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = perform()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body["error"])
}

func TestRateLimiterMiddlewareKeysPerUser(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	perform := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(auth.ContextKeyUserID, userID)
		require.NoError(t, handler(c))
		return rec
	}

	first := "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	second := "9c858901-8a57-4791-81fe-4c455b099bc9"

	assert.Equal(t, http.StatusOK, perform(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(first).Code)

	// A different user keeps an independent bucket.
	assert.Equal(t, http.StatusOK, perform(second).Code)
}

func TestRateLimiterDifferentIPs(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	perform := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		req.RemoteAddr = fmt.Sprintf("%s:4242", ip)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusOK, perform("10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, perform("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, perform("10.0.0.2").Code)
}

// The limiter only sees an authenticated identity when it runs after the
// authentication gate; this pins the chain order the server wires.
func TestRateLimiterKeysByUserBehindAuthentication(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret-key-for-unit-tests-0123456789", "HS256", time.Minute, time.Hour)
	require.NoError(t, err)

	userID := "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	token, err := tokens.GenerateAccessToken(userID, "alice@example.com", "user", []string{"read_own_profile"})
	require.NoError(t, err)

	rl := NewRateLimiter(1, 1)
	authMW := auth.NewMiddleware(tokens, nil)
	handler := authMW.Authenticate()(rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	_, userBucket := rl.limiters.Load("user:" + userID)
	assert.True(t, userBucket, "expected a per-user bucket")

	_, ipBucket := rl.limiters.Load("ip:192.0.2.1")
	assert.False(t, ipBucket, "request should not fall back to the IP key")
}

func TestStrictAndGlobalLimiterDefaults(t *testing.T) {
	strict := NewStrictRateLimiter()
	global := NewGlobalRateLimiter()

	assert.Equal(t, 10, strict.burst)
	assert.Equal(t, 200, global.burst)
}
