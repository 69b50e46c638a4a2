package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"settlement-orchestrator/migrations"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Parse(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	count := 1
	for {
		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
		count++
	}
	assert.Equal(t, 3, count)
}

func TestMigrations_EveryUpHasDown(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, up := range names {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestMigrations_TablesUsedByRepos(t *testing.T) {
	var schema strings.Builder
	names, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	for _, n := range names {
		b, err := fs.ReadFile(migrations.FS, n)
		require.NoError(t, err)
		schema.Write(b)
	}

	for _, table := range []string{"reservations", "conversion_slices", "orphan_refunds", "ledger_payments"} {
		assert.Contains(t, schema.String(), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
