package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestRunMigrations_PassesCommand(t *testing.T) {
	orig := gooseRunFunc
	defer func() { gooseRunFunc = orig }()

	var gotCmd, gotDir string
	var gotArgs []string
	gooseRunFunc = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
		gotCmd, gotDir, gotArgs = command, dir, args
		return nil
	}

	err := runMigrations(context.Background(), nil, "up-to", "2")
	require.NoError(t, err)
	assert.Equal(t, "up-to", gotCmd)
	assert.Equal(t, "migrations", gotDir)
	assert.Equal(t, []string{"2"}, gotArgs)
}

func TestRunMigrations_WrapsError(t *testing.T) {
	orig := gooseRunFunc
	defer func() { gooseRunFunc = orig }()

	gooseRunFunc = func(context.Context, string, *sql.DB, string, ...string) error {
		return goose.ErrNoNextVersion
	}

	err := runMigrations(context.Background(), nil, "up")
	assert.True(t, errors.Is(err, goose.ErrNoNextVersion))
}
