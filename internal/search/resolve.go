package search

import (
	"errors"
	"fmt"

	"github.com/bmk-dev/bmk/internal/model"
)

var ErrNotFound = errors.New("no bookmark matches")

// Resolve returns the best match for query across all bookmarks, using the
// same ranking as the interactive view so both agree on the top result.
func Resolve(query string, bookmarks []model.Bookmark) (model.Bookmark, error) {
	results := ComputeView(bookmarks, query, "")
	if len(results) == 0 {
		return model.Bookmark{}, fmt.Errorf("%w %q", ErrNotFound, query)
	}
	return results[0].Bookmark, nil
}
