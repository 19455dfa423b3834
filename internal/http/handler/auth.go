package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bouncer-service/internal/audit"
	"bouncer-service/internal/auth"
	"bouncer-service/internal/domain/user"
	apperrors "bouncer-service/pkg/errors"
	"bouncer-service/pkg/password"
	"bouncer-service/pkg/validator"
)

// Pre-computed bcrypt hash (cost 12) compared against on unknown-email logins
// so response timing matches the known-email path.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	userRepo    UserRepository
	roleRepo    RoleRepository
	permissions PermissionSource
	tokens      *auth.TokenService
	auditLog    AuditRecorder
}

func NewAuthHandler(userRepo UserRepository, roleRepo RoleRepository, permissions PermissionSource, tokens *auth.TokenService, auditLog AuditRecorder) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		permissions: permissions,
		tokens:      tokens,
		auditLog:    auditLog,
	}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := password.Validate(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.PersonName("first_name", req.FirstName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.PersonName("last_name", req.LastName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Phone(req.Phone); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	ctx := c.Request().Context()

	role, err := h.roleRepo.GetByName(ctx, defaultRoleName)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgRegistrationFail)
	}

	u, err := h.userRepo.Create(ctx, user.CreateUserInput{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		RoleID:       role.ID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		return respondError(c, http.StatusInternalServerError, msgRegistrationFail)
	}

	h.auditLog.Record(c, audit.ActionRegister, audit.StatusSuccess, &u.ID, u.Email)

	return c.JSON(http.StatusCreated, newUserResponse(u, role.Name))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	ctx := c.Request().Context()

	u, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(req.Password, dummyBcryptHash)
		h.auditLog.Record(c, audit.ActionLogin, audit.StatusFailure, nil, req.Email)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		h.auditLog.Record(c, audit.ActionLogin, audit.StatusFailure, &u.ID, u.Email)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !u.IsActive {
		h.auditLog.Record(c, audit.ActionLogin, audit.StatusDenied, &u.ID, u.Email)
		return respondError(c, http.StatusForbidden, msgAccountInactive)
	}

	pair, err := h.issueTokenPair(ctx, u)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	if err := h.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		c.Logger().Warnf("failed to record last login for %s: %v", u.ID, err)
	}

	h.auditLog.Record(c, audit.ActionLogin, audit.StatusSuccess, &u.ID, u.Email)

	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a valid refresh token for a fresh token pair. Role and
// permissions are re-read from the store, so revocations take effect here.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	claims, err := h.tokens.Verify(req.RefreshToken, auth.TokenKindRefresh)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, auth.DenyDetail(err))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	ctx := c.Request().Context()

	u, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}
	if !u.IsActive {
		return respondError(c, http.StatusForbidden, msgAccountInactive)
	}

	pair, err := h.issueTokenPair(ctx, u)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	h.auditLog.Record(c, audit.ActionRefresh, audit.StatusSuccess, &u.ID, u.Email)

	return c.JSON(http.StatusOK, pair)
}

// Logout is stateless: tokens expire on their own. The endpoint exists so
// clients have a uniform call to clear their session against.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auditLog.Record(c, audit.ActionLogout, audit.StatusSuccess, nil, "")
	return respondMessage(c, http.StatusOK, msgLogoutOK)
}

func (h *AuthHandler) issueTokenPair(ctx context.Context, u *user.User) (*TokenPairResponse, error) {
	roleName, permissions, err := h.roleContext(ctx, u)
	if err != nil {
		return nil, err
	}

	accessToken, err := h.tokens.GenerateAccessToken(u.ID.String(), u.Email, roleName, permissions)
	if err != nil {
		return nil, err
	}

	refreshToken, err := h.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(h.tokens.AccessTTL().Seconds()),
	}, nil
}

// roleContext loads the user's role name and permission list. A user
// without a role gets no permissions rather than an error.
func (h *AuthHandler) roleContext(ctx context.Context, u *user.User) (string, []string, error) {
	if u.RoleID == nil {
		return "", []string{}, nil
	}

	role, err := h.roleRepo.GetByID(ctx, *u.RoleID)
	if err != nil {
		return "", nil, err
	}

	permissions, err := h.permissions.GetRolePermissions(ctx, role.ID)
	if err != nil {
		return "", nil, err
	}

	return role.Name, permissions, nil
}
