package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emre23q/CMS2/internal/attachments"
	"github.com/emre23q/CMS2/internal/config"
	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
)

type nopOpener struct{}

func (nopOpener) OpenPath(context.Context, string) error { return nil }

// newTestServices stands up the full stack (database, repositories,
// attachment tree, services) in a temp directory, exactly as the
// application wires it at startup.
func newTestServices(t *testing.T) (*Services, *store.DB, *attachments.Store) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := store.Open(ctx, config.DB{Path: filepath.Join(dir, "ClientDB.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })

	repos := store.NewRepositories(db, logger.Nop())
	require.NoError(t, repos.FieldRepository.Initialize(ctx))

	files, err := attachments.NewStore(config.Attachments{Root: filepath.Join(dir, "Attachments")}, nopOpener{}, logger.Nop())
	require.NoError(t, err)

	return NewServices(db, repos, files, logger.Nop()), db, files
}

// addTestClient inserts a client through the service layer and returns its id.
func addTestClient(t *testing.T, svc *Services, fields map[string]any) int64 {
	t.Helper()

	id, err := svc.ClientService.AddClient(context.Background(), fields)
	require.NoError(t, err)
	return id
}
