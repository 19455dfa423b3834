package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bouncer-service/internal/audit"
)

type AdminHandler struct {
	users UserLister
	roles RoleRepository
	audit AuditReader
}

func NewAdminHandler(users UserLister, roles RoleRepository, audit AuditReader) *AdminHandler {
	return &AdminHandler{users: users, roles: roles, audit: audit}
}

type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListUsers returns a page of users. Role names are resolved once per
// distinct role id, not per row.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit := queryInt(c, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	ctx := c.Request().Context()

	users, err := h.users.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListUsersFail)
	}

	roleNames := map[string]string{}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		role := ""
		if u.RoleID != nil {
			key := u.RoleID.String()
			if cached, ok := roleNames[key]; ok {
				role = cached
			} else if r, err := h.roles.GetByID(ctx, *u.RoleID); err == nil {
				role = r.Name
				roleNames[key] = role
			}
		}
		out = append(out, newUserResponse(u, role))
	}

	return c.JSON(http.StatusOK, ListUsersResponse{
		Users:  out,
		Limit:  limit,
		Offset: offset,
	})
}

type AuditEventResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Status    string         `json:"status"`
	ActorID   string         `json:"actor_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type ListAuditEventsResponse struct {
	Events []AuditEventResponse `json:"events"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// ListAuditEvents returns a page of authentication audit events, newest
// first, optionally filtered by action, status, or actor id.
func (h *AdminHandler) ListAuditEvents(c echo.Context) error {
	limit := queryInt(c, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := audit.QueryFilter{Limit: limit, Offset: offset}

	if raw := c.QueryParam("action"); raw != "" {
		action := audit.Action(raw)
		filter.Action = &action
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := audit.Status(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidActorID)
		}
		filter.ActorID = &actorID
	}

	events, err := h.audit.Query(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListAuditEventsFail)
	}

	out := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		resp := AuditEventResponse{
			ID:        event.ID.String(),
			Action:    string(event.Action),
			Status:    string(event.Status),
			Email:     event.Email,
			IPAddress: event.IPAddress,
			UserAgent: event.UserAgent,
			RequestID: event.RequestID,
			Metadata:  event.Metadata,
			CreatedAt: event.CreatedAt,
		}
		if event.ActorID != nil {
			resp.ActorID = event.ActorID.String()
		}
		out = append(out, resp)
	}

	return c.JSON(http.StatusOK, ListAuditEventsResponse{
		Events: out,
		Limit:  limit,
		Offset: offset,
	})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
