// Package migrations embeds the SQL schema and applies it with
// golang-migrate at startup.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var embeddedMigrationsFS embed.FS

// MigrationsFS exposes the embedded SQL files for tests.
func MigrationsFS() fs.FS {
	return embeddedMigrationsFS
}

// Run applies all pending migrations against the database behind
// databaseURL (a postgresql:// connection string).
//
// migrate.ErrNoChange is not an error: it just means the schema is
// already current.
func Run(databaseURL string) error {
	source, err := iofs.New(embeddedMigrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	// golang-migrate's pgx/v5 driver registers itself under the
	// pgx5:// scheme.
	url := strings.Replace(databaseURL, "postgresql://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
