package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var draftMigrations embed.FS

// RunMigrations applies pending draft-store migrations and reports the
// resulting schema version. A dirty schema is an error: it needs manual repair
// before the generator can use the database.
func RunMigrations(db *sql.DB) (uint, error) {
	src, err := iofs.New(draftMigrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("open draft migrations: %w", err)
	}

	target, err := migratesqlite.WithInstance(db, &migratesqlite.Config{MigrationsTable: "draft_schema_migrations"})
	if err != nil {
		return 0, fmt.Errorf("prepare draft schema: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", target)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate draft schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read draft schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("draft schema version %d is dirty", version)
	}

	return version, nil
}
