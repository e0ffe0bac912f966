package tui

import (
	"reflect"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/search"
)

// liveQuery is the query the view reflects: the search buffer while typing,
// the committed query otherwise.
func (a *App) liveQuery() string {
	if a.mode == ModeSearching {
		return a.search.Input.Value()
	}
	return a.query
}

// refreshView recomputes the filtered view and re-clamps the selection,
// following the previously selected bookmark when it is still visible.
func (a *App) refreshView() {
	name := ""
	if b, ok := a.Selected(); ok {
		name = b.Name
	}
	a.refreshViewSelecting(name)
}

// refreshViewSelecting recomputes the view and selects name if present,
// falling back to the first row, or none for an empty view.
func (a *App) refreshViewSelecting(name string) {
	a.results = search.ComputeView(a.store.Bookmarks, a.liveQuery(), a.activeTag)
	a.selected = indexOf(a.results, name)
}

func indexOf(results []search.Result, name string) int {
	if len(results) == 0 {
		return -1
	}
	if name != "" {
		for i, r := range results {
			if r.Bookmark.Name == name {
				return i
			}
		}
	}
	return 0
}

// moveSelection moves the selection by delta, clamped to the view (no wrap).
func (a *App) moveSelection(delta int) {
	if len(a.results) == 0 {
		a.selected = -1
		return
	}
	a.selected = clamp(a.selected+delta, 0, len(a.results)-1)
}

func (a *App) selectFirst() {
	if len(a.results) > 0 {
		a.selected = 0
	}
}

func (a *App) selectLast() {
	if len(a.results) > 0 {
		a.selected = len(a.results) - 1
	}
}

// sameBookmarks reports whether two stores hold the same bookmarks,
// ignoring order.
func sameBookmarks(x, y *model.Store) bool {
	if x.Len() != y.Len() {
		return false
	}
	return reflect.DeepEqual(x.Sorted(), y.Sorted())
}
