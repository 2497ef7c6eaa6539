package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/model"
)

func TestPersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "wishes.db")

	s, err := Open(path)
	require.NoError(t, err)
	a, b := model.NewWish("Buy a new iPhone"), model.NewWish("Travel to Europe")
	require.NoError(t, s.Insert(ctx, a))
	require.NoError(t, s.Insert(ctx, b))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Wish{a, b}, got)
	assert.Equal(t, path, reopened.Path())
}

func TestDeleteKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	a, b, c := model.NewWish("a"), model.NewWish("b"), model.NewWish("c")
	for _, w := range []model.Wish{a, b, c} {
		require.NoError(t, s.Insert(ctx, w))
	}

	found, err := s.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, found)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Wish{a, c}, got)
}

func TestEmptyDatabaseLoadsEmpty(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInsertDuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	w := model.NewWish("a")
	require.NoError(t, s.Insert(ctx, w))
	assert.Error(t, s.Insert(ctx, w))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSchemaVersionRecorded(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	var version int
	require.NoError(t, s.DB().QueryRow(`SELECT value FROM schema_meta WHERE key = 'version'`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishes.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec(`UPDATE schema_meta SET value = 99 WHERE key = 'version'`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.ErrorContains(t, err, "unsupported schema version")
}

func TestWritesFailAfterClose(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Error(t, s.Insert(context.Background(), model.NewWish("a")))
	_, err = s.Delete(context.Background(), model.NewWish("a").ID)
	assert.Error(t, err)
}
