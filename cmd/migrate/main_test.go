package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	ddl := `-- price sets
CREATE TABLE price_sets (
  price_set_id STRING(64) NOT NULL,
) PRIMARY KEY (price_set_id);

-- trailing comment
CREATE INDEX idx ON prices (price_set_id);
`
	stmts := splitDDLStatements(ddl)

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE price_sets (\nprice_set_id STRING(64) NOT NULL,\n) PRIMARY KEY (price_set_id)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx ON prices (price_set_id)", stmts[1])
	assert.Empty(t, splitDDLStatements("-- nothing\n\n"))
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "001_a.sql"), filepath.Join(dir, "002_b.sql")}, files)
}

func TestSchemaMigration(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_pricing_schema.sql"))
	require.NoError(t, err)

	stmts := splitDDLStatements(string(content))
	assert.NotEmpty(t, stmts)
	for _, stmt := range stmts {
		assert.NotContains(t, stmt, ";")
	}
}
