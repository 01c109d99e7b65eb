package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uhoo_bridge/internal/models"
)

// UserSQLite stores the accounts allowed to use the local API.
type UserSQLite struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

var _ Authorization = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO api_users (username, password_hash) VALUES (?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM api_users WHERE username = ?`
	countUsersSQL           = `SELECT COUNT(*) FROM api_users`
)

// Create inserts a user and returns its id.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert api user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for api user %q: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when the user does not exist.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select api user %q: %w", username, err)
	}
	return &u, nil
}

// Count returns the number of registered users.
func (r *UserSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUsersSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count api users: %w", err)
	}
	return n, nil
}
