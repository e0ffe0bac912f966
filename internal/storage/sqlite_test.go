package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/storage"
)

func newSQLite(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "bookmarks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.Save(sampleStore()))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleStore().Bookmarks, loaded.Bookmarks)
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s := newSQLite(t)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestSQLiteStorage_SaveReplacesContents(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.Save(sampleStore()))

	smaller := sampleStore()
	require.NoError(t, smaller.RemoveBookmark("gh"))
	require.NoError(t, s.Save(smaller))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.False(t, loaded.HasBookmark("gh"))
}

func TestSQLiteStorage_FailedSaveKeepsPreviousContents(t *testing.T) {
	s := newSQLite(t)
	require.NoError(t, s.Save(sampleStore()))

	// Duplicate primary key aborts the transaction.
	bad := &model.Store{Bookmarks: []model.Bookmark{
		{Name: "x", URL: "https://x.example"},
		{Name: "x", URL: "https://y.example"},
	}}
	require.Error(t, s.Save(bad))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleStore().Bookmarks, loaded.Bookmarks)
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.sqlite")

	s, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleStore()))
	require.NoError(t, s.Close())

	s, err = storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	defer s.Close()

	version, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Len())
}
