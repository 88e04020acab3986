package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/idx"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	userColumns = `id, username, email, password_hash, created_at`

	uniqueViolation = "23505"
)

var constraintFields = map[string]string{
	"users_email_unique":    "email",
	"users_username_unique": "username",
	"users_pkey":            "id",
}

type usersRepo struct {
	q querier
}

func (r *usersRepo) FindUser(ctx context.Context, f store.UserFilter) (domain.User, error) {
	if f.IsEmpty() {
		return domain.User{}, store.ErrEmptyFilter
	}

	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE username = $1 OR email = $2
		 ORDER BY created_at, id
		 LIMIT 1`,
		nullable(f.Username), nullable(f.Email),
	))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	return u, mapNotFound(err)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = idx.New().String()
	u.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}
	return u, nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	if field, ok := constraintFields[pgErr.ConstraintName]; ok {
		return &store.ConflictError{Field: field}
	}
	return &store.ConflictError{Field: pgErr.ConstraintName}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
