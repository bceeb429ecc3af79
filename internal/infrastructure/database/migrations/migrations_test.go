package migrations

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS_Embedded(t *testing.T) {
	fs := MigrationsFS()
	require.NotNil(t, fs)

	entries, err := embeddedMigrationsFS.ReadDir(".")
	require.NoError(t, err)

	fileNames := make(map[string]bool)
	for _, entry := range entries {
		fileNames[entry.Name()] = true
	}

	require.True(t, fileNames["000001_create_books_table.up.sql"], "books up migration should be embedded")
	require.True(t, fileNames["000001_create_books_table.down.sql"], "books down migration should be embedded")
	require.True(t, fileNames["000002_create_loans_table.up.sql"], "loans up migration should be embedded")
	require.True(t, fileNames["000002_create_loans_table.down.sql"], "loans down migration should be embedded")
}

func TestMigrations_SourceLoads(t *testing.T) {
	source, err := iofs.New(embeddedMigrationsFS, ".")
	require.NoError(t, err, "iofs should accept the embedded migration set")
	require.NoError(t, source.Close())
}

// The repositories map unique violations back to domain errors by
// constraint name, so the schema must keep these names stable.
func TestMigrations_ConstraintNames(t *testing.T) {
	books, err := embeddedMigrationsFS.ReadFile("000001_create_books_table.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(books), "books_isbn_key")
	require.Contains(t, string(books), "UNIQUE (isbn)")

	loans, err := embeddedMigrationsFS.ReadFile("000002_create_loans_table.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(loans), "loans_one_outstanding")
	require.Contains(t, string(loans), "WHERE returned IS NOT TRUE")
}
