package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emre23q/CMS2/internal/config"
	"github.com/emre23q/CMS2/internal/logger"
)

// newTestDB opens a fresh database in a temp directory. The snapshot file
// lives for the duration of the test, so reopen scenarios can reuse the
// returned config.
func newTestDB(t *testing.T) (*DB, config.DB) {
	t.Helper()

	cfg := config.DB{
		Path: filepath.Join(t.TempDir(), "ClientDB.db"),
	}

	db, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	return db, cfg
}

// seedClient inserts one client with the three protected fields set and
// returns its id.
func seedClient(t *testing.T, db *DB, firstName, lastName string) int64 {
	t.Helper()

	ctx := context.Background()
	err := db.Exec(ctx, "INSERT INTO Client (firstName, lastName) VALUES (?, ?);", firstName, lastName)
	require.NoError(t, err)

	id, err := db.LastInsertID(ctx)
	require.NoError(t, err)

	return id
}
