package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "wishes.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestInsertPersistsInOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, b := model.NewWish("Buy a new iPhone"), model.NewWish("Travel to Europe")
	require.NoError(t, s.Insert(ctx, a))
	require.NoError(t, s.Insert(ctx, b))

	reopened := New(s.Path())
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Wish{a, b}, got)
}

func TestFileLayoutCarriesSchemaVersion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	w := model.NewWish("Practice latin dances")
	require.NoError(t, s.Insert(ctx, w))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.EqualValues(t, SchemaVersion, doc["schema_version"])
	wishes, ok := doc["wishes"].([]interface{})
	require.True(t, ok)
	require.Len(t, wishes, 1)
	entry := wishes[0].(map[string]interface{})
	assert.Equal(t, w.ID.String(), entry["id"])
	assert.Equal(t, "Practice latin dances", entry["title"])
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
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

func TestInsertRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	w := model.NewWish("a")
	require.NoError(t, s.Insert(ctx, w))
	assert.Error(t, s.Insert(ctx, w))
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"schema_version": 99, "wishes": []}`), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "unsupported schema version")
}

func TestLoadRejectsGarbage(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`not json`), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "json unmarshal")
}

func TestFailedWriteKeepsPreviousFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	ctx := context.Background()
	dir := t.TempDir()
	s := New(filepath.Join(dir, "wishes.json"))
	a := model.NewWish("a")
	require.NoError(t, s.Insert(ctx, a))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	assert.Error(t, s.Insert(ctx, model.NewWish("b")))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Wish{a}, got)
}

func TestNewDefaultsPath(t *testing.T) {
	assert.Equal(t, DefaultFileName, New("").Path())
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	s := newTestStore(t)
	w := model.NewWish("a")
	body := `{"schema_version": 1, "wishes": [` +
		`{"id": "` + w.ID.String() + `", "title": "a"},` +
		`{"id": "` + w.ID.String() + `", "title": "b"}]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(body), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "duplicate wish id")

	_, err = s.Delete(context.Background(), w.ID)
	assert.Error(t, err)
	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, body, string(raw), "a rejected file must not be rewritten")
}

func TestLoadRejectsMissingID(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"schema_version": 1, "wishes": [{"title": "c"}]}`), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "has no id")
}

func TestInsertCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "nested", "wishes.json")
	s := New(path)

	w := model.NewWish("Travel to Europe")
	require.NoError(t, s.Insert(ctx, w))

	got, err := New(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Wish{w}, got)
}
