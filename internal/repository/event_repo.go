package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"uhoo_bridge/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

const (
	// SQLite TIMESTAMP text layout used for occurred_at.
	sqliteTimestampLayout = "2006-01-02 15:04:05"

	insertEventSQL = `INSERT INTO session_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, message, meta FROM session_events`
)

// Append stores a session event, filling in a missing id and timestamp.
func (r *EventSQLite) Append(ctx context.Context, e models.SessionEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		occurred.UTC().Format(sqliteTimestampLayout),
		normalizeType(e.Type),
		e.Description,
		encodeMeta(e.Metadata),
	)
	return err
}

// List returns events in [from, to] (zero bounds are open), optionally of one type, oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.SessionEvent, error) {
	var (
		where []string
		args  []any
	)
	if !from.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		where = append(where, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}
	if typ = normalizeType(typ); typ != "" {
		where = append(where, "type = ?")
		args = append(args, typ)
	}

	q := selectEventSQL
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SessionEvent
	for rows.Next() {
		var (
			ev   models.SessionEvent
			meta sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &meta); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.Metadata = decodeMeta(meta)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func normalizeType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// encodeMeta returns nil for absent or unencodable metadata so the column stays NULL.
func encodeMeta(v any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// decodeMeta keeps the raw string when the stored JSON is malformed.
func decodeMeta(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return ns.String
	}
	return v
}
