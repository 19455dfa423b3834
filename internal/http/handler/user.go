package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bouncer-service/internal/auth"
	"bouncer-service/internal/domain/user"
	"bouncer-service/pkg/validator"
)

type UserHandler struct {
	profiles ProfileRepository
	roles    RoleRepository
	avatars  AvatarURLSigner // nil when avatar storage is disabled
}

func NewUserHandler(profiles ProfileRepository, roles RoleRepository, avatars AvatarURLSigner) *UserHandler {
	return &UserHandler{
		profiles: profiles,
		roles:    roles,
		avatars:  avatars,
	}
}

type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      string     `json:"phone,omitempty"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	AvatarLink string     `json:"avatar_link,omitempty"`
	Role       string     `json:"role,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func newUserResponse(u *user.User, role string) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		Role:       role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

type AvatarUploadURLRequest struct {
	ContentType string `json:"content_type"`
}

type AvatarUploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarKey string `json:"avatar_key"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	ctx := c.Request().Context()

	u, err := h.profiles.GetByID(ctx, userID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	resp := newUserResponse(u, h.roleName(c, u))

	// Avatar objects are private; hand out a short-lived download link
	// alongside the stable key.
	if h.avatars != nil && u.AvatarURL != "" {
		link, err := h.avatars.AvatarDownloadURL(ctx, userID.String())
		if err != nil {
			c.Logger().Warnf("failed to presign avatar download for %s: %v", userID, err)
		} else {
			resp.AvatarLink = link
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	var req UpdateProfileRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.FirstName != nil {
		if err := validator.PersonName("first_name", *req.FirstName); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}
	if req.LastName != nil {
		if err := validator.PersonName("last_name", *req.LastName); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}
	if req.Phone != nil {
		if err := validator.Phone(*req.Phone); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	u, err := h.profiles.UpdateProfile(c.Request().Context(), userID, user.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, newUserResponse(u, h.roleName(c, u)))
}

// AvatarUploadURL hands the client a presigned PUT URL; the upload itself
// goes straight to object storage. The stored avatar URL is updated once
// the URL is issued, pointing at the stable object key.
func (h *UserHandler) AvatarUploadURL(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if h.avatars == nil {
		return respondError(c, http.StatusServiceUnavailable, msgAvatarStorageDisabled)
	}

	var req AvatarUploadURLRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if err := validator.ImageContentType(req.ContentType); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	uploadURL, key, err := h.avatars.AvatarUploadURL(ctx, userID.String(), req.ContentType)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgAvatarURLFail)
	}

	if _, err := h.profiles.UpdateProfile(ctx, userID, user.UpdateProfileInput{AvatarURL: &key}); err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, AvatarUploadURLResponse{
		UploadURL: uploadURL,
		AvatarKey: key,
	})
}

// roleName resolves the display role for a user, best effort. Profile
// reads should not fail because the role row is briefly unavailable.
func (h *UserHandler) roleName(c echo.Context, u *user.User) string {
	if u.RoleID == nil {
		return ""
	}

	role, err := h.roles.GetByID(c.Request().Context(), *u.RoleID)
	if err != nil {
		c.Logger().Warnf("failed to resolve role %s: %v", u.RoleID, err)
		return ""
	}

	return role.Name
}
