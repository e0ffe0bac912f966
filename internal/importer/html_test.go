package importer_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/bmk-dev/bmk/internal/importer"
	"github.com/bmk-dev/bmk/internal/model"
)

func parse(t *testing.T, doc string) []model.Bookmark {
	t.Helper()
	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(doc))
	assert.NilError(t, err)
	return bookmarks
}

func TestParseHTML_SingleBookmark(t *testing.T) {
	bookmarks := parse(t, `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`)

	assert.DeepEqual(t, bookmarks, []model.Bookmark{
		{Name: "Example Site", URL: "https://example.com"},
	})
}

func TestParseHTML_NestedFoldersBecomeTags(t *testing.T) {
	bookmarks := parse(t, `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React Native</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`)

	assert.DeepEqual(t, bookmarks, []model.Bookmark{
		{Name: "React Docs", URL: "https://react.dev", Tags: []string{"development", "react-native"}},
		{Name: "GitHub", URL: "https://github.com", Tags: []string{"development"}},
		{Name: "Google", URL: "https://google.com"},
	})
}

func TestParseHTML_TagsAttributeAndDescription(t *testing.T) {
	bookmarks := parse(t, `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://go.dev" TAGS="go,Lang, work">Go</A>
        <DD>The Go   programming language
        <DT><A HREF="https://pkg.go.dev">pkg.go.dev</A>
    </DL><p>
</DL><p>`)

	assert.Equal(t, len(bookmarks), 2)

	// The folder tag and the attribute tag "work" collapse into one
	assert.DeepEqual(t, bookmarks[0], model.Bookmark{
		Name: "Go",
		URL:  "https://go.dev",
		Desc: "The Go programming language",
		Tags: []string{"go", "Lang", "work"},
	})
	assert.Equal(t, bookmarks[1].Desc, "")
}

func TestParseHTML_SkipsLinksWithoutHref(t *testing.T) {
	bookmarks := parse(t, `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="">Empty</A>
    <DT><A HREF="https://example.com">Kept</A>
</DL><p>`)

	assert.Equal(t, len(bookmarks), 1)
	assert.Equal(t, bookmarks[0].Name, "Kept")
}

func TestParseHTML_UntitledUsesURL(t *testing.T) {
	bookmarks := parse(t, `<DL><p><DT><A HREF="https://example.com"></A></DL>`)

	assert.Equal(t, len(bookmarks), 1)
	assert.Equal(t, bookmarks[0].Name, "https://example.com")
}

func TestParseHTML_EmptyFolderDoesNotLeak(t *testing.T) {
	bookmarks := parse(t, `<DL><p>
    <DT><H3>Empty</H3>
    <DL><p>
    </DL><p>
    <DT><A HREF="https://example.com">Root</A>
</DL><p>`)

	assert.Equal(t, len(bookmarks), 1)
	assert.Equal(t, len(bookmarks[0].Tags), 0)
}

func TestParseHTML_EmptyDocument(t *testing.T) {
	bookmarks := parse(t, "")
	assert.Equal(t, len(bookmarks), 0)
}

func TestFolderTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Development", "development"},
		{"Bookmarks Bar", "bookmarks-bar"},
		{"  Read   Later ", "read-later"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, importer.FolderTag(tt.in), tt.want)
		})
	}
}

func TestParseHTML_MergeIntoStore(t *testing.T) {
	store := &model.Store{Bookmarks: []model.Bookmark{
		{Name: "GitHub", URL: "https://github.com"},
		{Name: "Go", URL: "https://golang.org"},
	}}

	bookmarks := parse(t, `<DL><p>
    <DT><A HREF="https://github.com">GitHub mirror</A>
    <DT><A HREF="https://go.dev">Go</A>
</DL><p>`)

	added, skipped := store.ImportMerge(bookmarks)

	assert.Equal(t, added, 1)
	assert.Equal(t, skipped, 1)
	assert.Assert(t, store.HasBookmark("Go-2"))
	assert.Equal(t, store.GetBookmark("Go-2").URL, "https://go.dev")
}
