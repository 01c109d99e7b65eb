package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"uhoo_bridge/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

const (
	defaultReadingsLimit = 500
	maxReadingsLimit     = 5000

	insertReadingSQL = `
		INSERT INTO readings (observed_at, co, co2, no2, ozone, voc, dust, temp_c, humidity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectReadingsSQL = `SELECT id, observed_at, co, co2, no2, ozone, voc, dust, temp_c, humidity FROM readings`
)

// Append stores one reading. A zero ObservedAt is replaced with the current UTC time.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) error {
	ts := rd.ObservedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		ts,
		rd.CO,
		rd.CO2,
		rd.NO2,
		rd.Ozone,
		rd.VOC,
		rd.Dust,
		rd.Temperature,
		rd.Humidity,
	)
	return err
}

// List returns readings within [from, to] (zero bounds are open), newest first.
func (r *ReadingSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "observed_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "observed_at <= ?")
		args = append(args, to.UTC())
	}
	if limit <= 0 {
		limit = defaultReadingsLimit
	}
	if limit > maxReadingsLimit {
		limit = maxReadingsLimit
	}

	q := selectReadingsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY observed_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Reading, 0, 64)
	for rows.Next() {
		var rd models.Reading
		if err := rows.Scan(
			&rd.ID,
			&rd.ObservedAt,
			&rd.CO,
			&rd.CO2,
			&rd.NO2,
			&rd.Ozone,
			&rd.VOC,
			&rd.Dust,
			&rd.Temperature,
			&rd.Humidity,
		); err != nil {
			return nil, err
		}
		rd.ObservedAt = rd.ObservedAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Latest returns the newest stored reading, or nil when the table is empty.
func (r *ReadingSQLite) Latest(ctx context.Context) (*models.Reading, error) {
	var rd models.Reading
	err := r.db.QueryRowContext(ctx, selectReadingsSQL+" ORDER BY observed_at DESC LIMIT 1").Scan(
		&rd.ID,
		&rd.ObservedAt,
		&rd.CO,
		&rd.CO2,
		&rd.NO2,
		&rd.Ozone,
		&rd.VOC,
		&rd.Dust,
		&rd.Temperature,
		&rd.Humidity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rd.ObservedAt = rd.ObservedAt.UTC()
	return &rd, nil
}
