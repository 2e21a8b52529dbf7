package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"tiendanube/pkg/config"
)

const DefaultMigrationsPath = "file://migrations"

// Migrate applies pending up migrations. An already current schema is not an error.
func Migrate(cfg config.Config) error {
	path := cfg.MigrationsPath
	if path == "" {
		path = DefaultMigrationsPath
	}
	m, err := migrate.New(path, migrationConnString(cfg))
	if err != nil {
		return fmt.Errorf("init migrations from %s: %w", path, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
