package storage

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/pressly/goose"
	"github.com/sirupsen/logrus"
)

// Migrate прогоняет goose-миграции из каталога dir
func Migrate(db *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}
	if err := goose.Up(db, dir); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	logrus.Info("Migrations applied successfully")
	return nil
}
