// Package migrations embeds the MySQL schema and applies it with golang-migrate.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Up applies all pending migrations. It reports whether anything changed.
func Up(ctx context.Context, db *sql.DB) (bool, error) {
	return run(ctx, db, func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back the given number of migrations.
func Down(ctx context.Context, db *sql.DB, steps int) (bool, error) {
	if steps <= 0 {
		return false, fmt.Errorf("migrations.Down: steps must be positive, got %d", steps)
	}
	return run(ctx, db, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

// Version returns the current schema version and whether it is dirty.
func Version(ctx context.Context, db *sql.DB) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	_, err := run(ctx, db, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		return err
	})
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// run works on a dedicated connection so closing the migrator leaves db usable.
func run(ctx context.Context, db *sql.DB, fn func(m *migrate.Migrate) error) (bool, error) {
	const op = "migrations.run"

	src, err := iofs.New(files, ".")
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	driver, err := mysql.WithConnection(ctx, conn, &mysql.Config{})
	if err != nil {
		_ = conn.Close()
		return false, fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		_ = driver.Close()
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := fn(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
