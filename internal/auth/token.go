package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "bouncer-service/pkg/errors"
)

// Token kinds. Access tokens carry the full identity (email, role,
// permissions); refresh tokens carry only the subject.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

type Claims struct {
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Kind        string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies credential tokens. It is the single
// verification path for both the request middleware and handler-level
// calls such as token refresh.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf(errUnknownSigningAlgorithmFmt, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf(errNonHMACSigningAlgorithmFmt, algorithm)
	}

	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// GenerateAccessToken signs a short-lived access token embedding the
// caller's role and permission list.
func (s *TokenService) GenerateAccessToken(subjectID, email, role string, permissions []string) (string, error) {
	return s.sign(Claims{
		Email:       email,
		Role:        role,
		Permissions: permissions,
		Kind:        TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateRefreshToken signs a long-lived refresh token carrying only the
// subject id.
func (s *TokenService) GenerateRefreshToken(subjectID string) (string, error) {
	return s.sign(Claims{
		Kind: TokenKindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (s *TokenService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Decode parses and validates a token string without checking its kind.
// Failures are classified into the package sentinel errors; anything
// unexpected is coerced to ErrTokenMalformed so internals never leak.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(errUnexpectedSigningMethodFmt, token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.ErrSignatureInvalid
		default:
			return nil, apperrors.ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		// expiry is mandatory regardless of what the parser accepted
		return nil, apperrors.ErrTokenMalformed
	}

	return claims, nil
}

// Verify decodes a token and enforces the expected kind and a non-empty
// subject. Claims are returned unchanged on success.
func (s *TokenService) Verify(tokenString, expectedKind string) (*Claims, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Kind != expectedKind {
		return nil, apperrors.ErrKindMismatch
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrMissingSubject
	}

	return claims, nil
}

// DenyDetail maps a verification failure to the client-facing reason
// string. Raw error text from the JWT library is never surfaced.
func DenyDetail(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return msgTokenExpired
	case errors.Is(err, apperrors.ErrKindMismatch):
		return msgInvalidTokenKind
	default:
		return msgInvalidToken
	}
}
