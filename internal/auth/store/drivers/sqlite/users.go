package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/idx"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const userColumns = `id, username, email, password_hash, created_at`

type usersRepo struct {
	q querier
}

// FindUser runs a single OR query. Empty filter fields are bound as NULL so
// they can never match. If two rows match (one by username, another by
// email) the oldest wins.
func (r *usersRepo) FindUser(ctx context.Context, f store.UserFilter) (domain.User, error) {
	if f.IsEmpty() {
		return domain.User{}, store.ErrEmptyFilter
	}

	var row userRow
	err := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE username = ? OR email = ?
		 ORDER BY created_at, id
		 LIMIT 1`,
		nullable(f.Username), nullable(f.Email),
	).Scan(row.dest()...)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	err := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	).Scan(row.dest()...)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = idx.New().String()
	u.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}
	return u, nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict turns "UNIQUE constraint failed: users.<col>" into a
// *store.ConflictError naming the column.
func mapConflict(err error) error {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	// Primary code, whether or not extended result codes are enabled.
	msg := se.Error()
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT || !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}

	switch {
	case strings.Contains(msg, "users.email"):
		return &store.ConflictError{Field: "email"}
	case strings.Contains(msg, "users.username"):
		return &store.ConflictError{Field: "username"}
	default:
		return &store.ConflictError{Field: "id"}
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
