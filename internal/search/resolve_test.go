package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/bmk-dev/bmk/internal/model"
	"gotest.tools/v3/assert"
)

func TestResolve_BestMatch(t *testing.T) {
	got, err := Resolve("gh", scenarioBookmarks())

	assert.NilError(t, err)
	assert.Equal(t, got.Name, "gh")
	assert.Equal(t, got.URL, "https://github.com")
}

func TestResolve_PrefersNameOverURL(t *testing.T) {
	list := []model.Bookmark{
		{Name: "zz", URL: "https://github.com"},
		{Name: "gh", URL: "https://github.com", Desc: strings.Repeat("a long description of the site ", 8)},
	}

	got, err := Resolve("gh", list)

	assert.NilError(t, err)
	assert.Equal(t, got.Name, "gh")
}

func TestResolve_NotFound(t *testing.T) {
	_, err := Resolve("xyz123", scenarioBookmarks())
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestResolve_EmptyList(t *testing.T) {
	_, err := Resolve("gh", nil)
	assert.Assert(t, errors.Is(err, ErrNotFound))

	_, err = Resolve("", []model.Bookmark{})
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestResolve_AgreesWithComputeView(t *testing.T) {
	list := sampleBookmarks()
	queries := []string{"", "g", "git", "doc", "router", "tanrou", "hn", "news", "nothing-here"}

	for _, query := range queries {
		t.Run(query, func(t *testing.T) {
			view := ComputeView(list, query, "")
			got, err := Resolve(query, list)

			if len(view) == 0 {
				assert.Assert(t, errors.Is(err, ErrNotFound))
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got.Name, view[0].Bookmark.Name)
		})
	}
}
