package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bouncer-service/pkg/errors"
)

const testSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, "HS256", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRejectsBadAlgorithms(t *testing.T) {
	_, err := NewTokenService(testSecret, "HS999", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, "RS256", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, "none", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	tokenString, err := svc.GenerateAccessToken("user-1", "alice@example.com", "user", []string{"read_own_profile", "create_booking"})
	require.NoError(t, err)

	claims, err := svc.Verify(tokenString, TokenKindAccess)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, []string{"read_own_profile", "create_booking"}, claims.Permissions)
	assert.Equal(t, TokenKindAccess, claims.Kind)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	tokenString, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := svc.Verify(tokenString, TokenKindRefresh)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Permissions)
}

func TestVerifyKindMismatch(t *testing.T) {
	svc := newTestTokenService(t)

	refresh, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrKindMismatch)

	access, err := svc.GenerateAccessToken("user-1", "a@b.co", "user", nil)
	require.NoError(t, err)

	_, err = svc.Verify(access, TokenKindRefresh)
	assert.ErrorIs(t, err, apperrors.ErrKindMismatch)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, err := NewTokenService(testSecret, "HS256", -time.Minute, -time.Minute)
	require.NoError(t, err)

	tokenString, err := svc.GenerateAccessToken("user-1", "a@b.co", "user", nil)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService("another-secret-key-0123456789-abcdef", "HS256", time.Minute, time.Hour)
	require.NoError(t, err)

	tokenString, err := other.GenerateAccessToken("user-1", "a@b.co", "user", nil)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrSignatureInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := newTestTokenService(t)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tokenString, TokenKindAccess)
		assert.ErrorIs(t, err, apperrors.ErrTokenMalformed, "token %q", tokenString)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	svc := newTestTokenService(t)

	tokenString, err := svc.GenerateAccessToken("", "a@b.co", "user", nil)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrMissingSubject)
}

func TestDenyDetail(t *testing.T) {
	assert.Equal(t, msgTokenExpired, DenyDetail(apperrors.ErrTokenExpired))
	assert.Equal(t, msgInvalidTokenKind, DenyDetail(apperrors.ErrKindMismatch))
	assert.Equal(t, msgInvalidToken, DenyDetail(apperrors.ErrTokenMalformed))
	assert.Equal(t, msgInvalidToken, DenyDetail(apperrors.ErrSignatureInvalid))
	assert.Equal(t, msgInvalidToken, DenyDetail(apperrors.ErrMissingSubject))
}
