package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Record is one persisted audit row. The payload is stored as the event's
// JSON encoding, so the audit trail survives payload struct evolution.
type Record struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	UserID    *string         `json:"user_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows audit trail queries
type Filter struct {
	UserID    *string
	EventType *string
	Since     *time.Time
	Limit     int
}

// Repository defines the interface for audit trail storage
type Repository interface {
	// LogEvent stores an event in the database
	LogEvent(ctx context.Context, eventType string, userID *string, payload json.RawMessage) error

	// GetEvents retrieves audit rows based on filter criteria, newest first
	GetEvents(ctx context.Context, filter Filter) ([]Record, error)

	// CleanupOldEvents removes rows older than the given number of days and
	// reports how many were deleted
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
