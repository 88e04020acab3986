package postgres

import (
	"errors"

	"github.com/aussiebroadwan/authsvc/internal/auth/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations applies pending migrations. golang-migrate takes an
// advisory lock, so replicas starting together won't race each other.
func (s *Store) ApplyMigrations() error {
	driver, err := migratepgx.WithInstance(s.db, &migratepgx.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
