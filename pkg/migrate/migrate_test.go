package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	d, err := Dialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d)

	d, err = Dialect("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d)

	d, err = Dialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", d)

	_, err = Dialect("mysql")
	assert.Error(t, err)
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Sales Index!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_sales_index.sql"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- +goose Down")

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirRejectsBadFilenames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestCreateSQLMigrationRejectsVersionReuse(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := createSQLMigrationAt(dir, "first", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260102030405_first.sql"), path)

	_, err = createSQLMigrationAt(dir, "second", at)
	assert.Error(t, err)
}

func TestValidateDirRejectsUnbalancedBlocks(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_broken.sql"), []byte(body), 0o644))
	assert.Error(t, ValidateDir(dir))
}
