package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/eventlog"
)

// EventLogRepository implements eventlog.Repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent stores one audit row
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload json.RawMessage) error {
	query := `
		INSERT INTO event_log (event_type, user_id, payload)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, eventType, userID, payload)
	if err != nil {
		return fmt.Errorf("failed to insert event log row: %w", err)
	}
	return nil
}

// GetEvents retrieves audit rows matching the filter, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Record, error) {
	query := `
		SELECT id, event_type, user_id, payload, created_at
		FROM event_log
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += " AND user_id = $" + strconv.Itoa(len(args))
	}
	if filter.EventType != nil {
		args = append(args, *filter.EventType)
		query += " AND event_type = $" + strconv.Itoa(len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log: %w", err)
	}
	defer rows.Close()

	var records []eventlog.Record
	for rows.Next() {
		var rec eventlog.Record
		if err := rows.Scan(&rec.ID, &rec.EventType, &rec.UserID, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event log row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log rows: %w", err)
	}

	return records, nil
}

// CleanupOldEvents deletes rows older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM event_log
		WHERE created_at < NOW() - ($1 * INTERVAL '1 day')
	`

	tag, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up event log: %w", err)
	}
	return tag.RowsAffected(), nil
}
