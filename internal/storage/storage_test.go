package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/storage"
)

func sampleStore() *model.Store {
	return &model.Store{
		Bookmarks: []model.Bookmark{
			{Name: "docs", URL: "https://docs.example.com", Desc: "Reference docs", Tags: []string{"dev", "ref"}},
			{Name: "gh", URL: "https://github.com", Tags: []string{"dev"}},
			{Name: "hn", URL: "https://news.ycombinator.com"},
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpen_SelectsBackendByExtension(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.Open(filepath.Join(dir, "bookmarks.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &storage.YAMLStorage{}, s)

	s, err = storage.Open(filepath.Join(dir, "bookmarks"))
	require.NoError(t, err)
	assert.IsType(t, &storage.YAMLStorage{}, s)

	s, err = storage.Open(filepath.Join(dir, "bookmarks.JSON"))
	require.NoError(t, err)
	assert.IsType(t, &storage.JSONStorage{}, s)

	s, err = storage.Open(filepath.Join(dir, "bookmarks.db"))
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteStorage{}, s)
	assert.NoError(t, storage.Close(s))
}

func TestOpen_PathIsTheFileGiven(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"bookmarks.yaml", "bookmarks.json", "bookmarks.sqlite"} {
		path := filepath.Join(dir, name)
		s, err := storage.Open(path)
		require.NoError(t, err)
		assert.Equal(t, path, s.Path(), name)
		assert.NoError(t, storage.Close(s))
	}
}

func TestYAMLStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.yaml")
	s := storage.NewYAMLStorage(path)

	require.NoError(t, s.Save(sampleStore()))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleStore().Bookmarks, loaded.Bookmarks)
}

func TestYAMLStorage_FileFormat(t *testing.T) {
	path := writeFile(t, "bookmarks.yaml", `
gh:
  url: https://github.com
  tags: [dev, Dev, " code "]
hn:
  url: https://news.ycombinator.com
  desc: Hacker News
`)

	loaded, err := storage.NewYAMLStorage(path).Load()
	require.NoError(t, err)
	require.Len(t, loaded.Bookmarks, 2)

	gh := loaded.GetBookmark("gh")
	require.NotNil(t, gh)
	assert.Equal(t, "https://github.com", gh.URL)
	assert.Equal(t, []string{"code", "dev"}, gh.Tags)

	hn := loaded.GetBookmark("hn")
	require.NotNil(t, hn)
	assert.Equal(t, "Hacker News", hn.Desc)
	assert.Nil(t, hn.Tags)
}

func TestYAMLStorage_MissingFileIsEmpty(t *testing.T) {
	s := storage.NewYAMLStorage(filepath.Join(t.TempDir(), "missing.yaml"))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestYAMLStorage_EmptyFileIsEmpty(t *testing.T) {
	path := writeFile(t, "bookmarks.yaml", "")

	loaded, err := storage.NewYAMLStorage(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestYAMLStorage_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "gh: [unterminated\n"},
		{"not a mapping", "- https://github.com\n"},
		{"duplicate name", "gh:\n  url: https://github.com\ngh:\n  url: https://gitlab.com\n"},
		{"empty url", "gh:\n  desc: no url\n"},
		{"null record", "gh:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bookmarks.yaml", tt.content)

			_, err := storage.NewYAMLStorage(path).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, storage.ErrParse)
		})
	}
}

func TestYAMLStorage_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewYAMLStorage(filepath.Join(dir, "bookmarks.yaml"))

	require.NoError(t, s.Save(sampleStore()))
	require.NoError(t, s.Save(model.NewStore()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bookmarks.yaml", entries[0].Name())
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)

	require.NoError(t, s.Save(sampleStore()))

	_, err := os.Stat(path)
	require.NoError(t, err, "bookmarks file was not created")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleStore().Bookmarks, loaded.Bookmarks)
}

func TestJSONStorage_MissingFileIsEmpty(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "missing.json"))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, loaded.Bookmarks)
	assert.Equal(t, 0, loaded.Len())
}

func TestJSONStorage_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{"bookmarks": [`},
		{"duplicate name", `{"bookmarks": [{"name": "gh", "url": "a"}, {"name": "gh", "url": "b"}]}`},
		{"empty name", `{"bookmarks": [{"name": "", "url": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bookmarks.json", tt.content)

			_, err := storage.NewJSONStorage(path).Load()
			assert.ErrorIs(t, err, storage.ErrParse)
		})
	}
}

func TestWatch_ReportsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	s := storage.NewYAMLStorage(path)
	require.NoError(t, s.Save(model.NewStore()))

	w, err := storage.Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, s.Save(sampleStore()))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := storage.Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_CloseClosesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")

	w, err := storage.Watch(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("changes channel not closed")
	}
}
