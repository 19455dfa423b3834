// Package audit records security-relevant authentication events to the
// database. Writes are asynchronous and never block or fail a request.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"bouncer-service/pkg/logger"
)

// Action represents the authentication action being recorded
type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionRefresh  Action = "refresh"
	ActionLogout   Action = "logout"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

const writeTimeout = 2 * time.Second

// Event is one audit row
type Event struct {
	ID        uuid.UUID
	Action    Action
	Status    Status
	ActorID   *uuid.UUID
	Email     string
	IPAddress string
	UserAgent string
	RequestID string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Logger handles audit logging
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger creates a new audit logger
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records an audit event synchronously
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		// Failure metadata can quote request material; strip credentials
		// before it lands in a queryable table.
		metadataJSON, err = json.Marshal(logger.SanitizeFields(event.Metadata))
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, action, status, actor_id, email, ip_address, user_agent,
			request_id, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.Action,
		event.Status,
		event.ActorID,
		event.Email,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.CreatedAt,
	)

	return err
}

// Record logs an auth event from an Echo context asynchronously. A lost
// audit row is logged to the server log, not surfaced to the caller.
func (l *Logger) Record(c echo.Context, action Action, status Status, actorID *uuid.UUID, email string) {
	event := &Event{
		Action:    action,
		Status:    status,
		ActorID:   actorID,
		Email:     email,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}

// QueryFilter narrows an audit query
type QueryFilter struct {
	ActorID   *uuid.UUID
	Action    *Action
	Status    *Status
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

const defaultQueryLimit = 100

// Query retrieves audit events, newest first
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query := `
		SELECT id, action, status, actor_id, email, ip_address, user_agent,
		       request_id, metadata, created_at
		FROM audit_events
		WHERE 1=1
	`
	args := []any{}
	argCount := 1

	if filter.ActorID != nil {
		query += fmt.Sprintf(" AND actor_id = $%d", argCount)
		args = append(args, filter.ActorID)
		argCount++
	}

	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argCount)
		args = append(args, filter.Action)
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filter.StartTime)
		argCount++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, filter.EndTime)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	} else {
		query += fmt.Sprintf(" LIMIT %d", defaultQueryLimit)
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.Action,
			&event.Status,
			&event.ActorID,
			&event.Email,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&metadataJSON,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	return events, rows.Err()
}
