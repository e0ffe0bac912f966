package model

import (
	"fmt"
	"sort"
	"strings"
)

// Store holds all bookmarks.
type Store struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{
		Bookmarks: []Bookmark{},
	}
}

// Clone returns a deep copy of the store, so a mutation can be prepared
// and persisted before it replaces the live list.
func (s *Store) Clone() *Store {
	clone := &Store{Bookmarks: make([]Bookmark, len(s.Bookmarks))}
	for i, b := range s.Bookmarks {
		clone.Bookmarks[i] = b.Clone()
	}
	return clone
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.Bookmarks)
}

// GetBookmark finds a bookmark by name, returns nil if not found.
func (s *Store) GetBookmark(name string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Name == name {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// HasBookmark reports whether a bookmark with the given name exists.
func (s *Store) HasBookmark(name string) bool {
	return s.GetBookmark(name) != nil
}

// HasBookmarkURL reports whether any bookmark points at url.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// AddBookmark appends a bookmark.
// Fails with ErrValidation or ErrDuplicateName and leaves the store untouched.
func (s *Store) AddBookmark(b Bookmark) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if s.HasBookmark(b.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
	}
	s.Bookmarks = append(s.Bookmarks, b)
	return nil
}

// UpdateBookmark replaces the bookmark called name with b.
// b may carry a different name as long as it doesn't collide with another bookmark.
func (s *Store) UpdateBookmark(name string, b Bookmark) error {
	if err := b.Validate(); err != nil {
		return err
	}
	existing := s.GetBookmark(name)
	if existing == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if b.Name != name && s.HasBookmark(b.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
	}
	*existing = b
	return nil
}

// RemoveBookmark deletes the bookmark called name.
func (s *Store) RemoveBookmark(name string) error {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Name == name {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Tags returns the distinct tags across all bookmarks, sorted.
// Tags differing only in case are reported once.
func (s *Store) Tags() []string {
	var all []string
	for _, b := range s.Bookmarks {
		all = append(all, b.Tags...)
	}
	return NormalizeTags(all)
}

// Sorted returns the bookmarks ordered by name without modifying the store.
func (s *Store) Sorted() []Bookmark {
	sorted := append([]Bookmark(nil), s.Bookmarks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return LessByName(sorted[i], sorted[j])
	})
	return sorted
}

// FilterByTag returns the bookmarks carrying tag, or all when tag is empty.
func (s *Store) FilterByTag(tag string) []Bookmark {
	if tag == "" {
		return s.Bookmarks
	}
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if b.HasTag(tag) {
			result = append(result, b)
		}
	}
	return result
}

// Validate checks every record and the name uniqueness invariant.
// Used after loading persisted data so malformed records fail loudly.
func (s *Store) Validate() error {
	seen := make(map[string]bool, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		if err := b.Validate(); err != nil {
			return err
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// ImportMerge adds bookmarks whose URL isn't already present.
// Names colliding with existing bookmarks get a numeric suffix.
// Returns the number of bookmarks added and skipped.
func (s *Store) ImportMerge(bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		if b.Validate() != nil || s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		b.Name = s.uniqueName(b.Name)
		s.Bookmarks = append(s.Bookmarks, b)
		added++
	}
	return added, skipped
}

// uniqueName returns name, or name-2, name-3, ... if taken.
func (s *Store) uniqueName(name string) string {
	if !s.HasBookmark(name) {
		return name
	}
	base := strings.TrimSpace(name)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !s.HasBookmark(candidate) {
			return candidate
		}
	}
}
