package repository

import (
	"context"
	"database/sql"
	"time"

	"uhoo_bridge/internal/models"
)

// Authorization stores the local API accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// ReadingRepo keeps the history of successfully parsed readings.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) error
	List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error)
	Latest(ctx context.Context) (*models.Reading, error)
}

// EventRepo is the append-only vendor session log.
type EventRepo interface {
	Append(ctx context.Context, e models.SessionEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.SessionEvent, error)
}

type Repository struct {
	ReadingRepo ReadingRepo
	EventRepo   EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ReadingRepo: NewReadingSQLite(db),
		EventRepo:   NewEventSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
