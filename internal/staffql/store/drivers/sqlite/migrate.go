package sqlite

import (
	"errors"

	"github.com/aussiebroadwan/staffql/internal/staffql/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pkgerrors "github.com/pkg/errors"
)

// ApplyMigrations applies any pending migrations embedded in the binary.
// Running it against an up-to-date database is a no-op.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return pkgerrors.Wrap(err, "sqlite: migration driver")
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return pkgerrors.Wrap(err, "sqlite: migration source")
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return pkgerrors.Wrap(err, "sqlite: migrate")
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pkgerrors.Wrap(err, "sqlite: apply migrations")
	}
	return nil
}
