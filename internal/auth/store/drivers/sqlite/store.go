package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	_ "modernc.org/sqlite"
)

// querier is the subset of *sql.DB the repositories need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// NewStore opens the sqlite database at dsn. A single connection is used so
// writes are serialised and ":memory:" databases survive across calls.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.db} }

type userRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *userRow) dest() []any {
	return []any{&r.ID, &r.Username, &r.Email, &r.PasswordHash, &r.CreatedAt}
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
