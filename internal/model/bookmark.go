package model

import (
	"fmt"
	"sort"
	"strings"
)

// Bookmark represents a named URL with optional description and tags.
// Name is the bookmark's identity and is unique within a Store.
type Bookmark struct {
	Name string   `json:"name" yaml:"-"`
	URL  string   `json:"url" yaml:"url"`
	Desc string   `json:"desc,omitempty" yaml:"desc,omitempty"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Name string
	URL  string
	Desc string
	Tags []string
}

// NewBookmark creates a Bookmark with trimmed fields and normalized tags.
func NewBookmark(params NewBookmarkParams) Bookmark {
	return Bookmark{
		Name: strings.TrimSpace(params.Name),
		URL:  strings.TrimSpace(params.URL),
		Desc: strings.TrimSpace(params.Desc),
		Tags: NormalizeTags(params.Tags),
	}
}

// Validate checks that the required fields are present.
func (b Bookmark) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("%w: url is required for %q", ErrValidation, b.Name)
	}
	return nil
}

// HasTag reports whether the bookmark carries tag, ignoring case.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SearchText returns the text a query is matched against:
// name, url, description and tags separated by spaces.
func (b Bookmark) SearchText() string {
	parts := make([]string, 0, 3+len(b.Tags))
	parts = append(parts, b.Name, b.URL)
	if b.Desc != "" {
		parts = append(parts, b.Desc)
	}
	parts = append(parts, b.Tags...)
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of the bookmark.
func (b Bookmark) Clone() Bookmark {
	if b.Tags != nil {
		b.Tags = append([]string(nil), b.Tags...)
	}
	return b
}

// NormalizeTags trims, drops empties, removes case-insensitive duplicates
// and sorts the result. Returns nil for an empty set.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var result []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, tag)
	}
	sort.Slice(result, func(i, j int) bool {
		return lessFold(result[i], result[j])
	})
	return result
}

// ParseTags splits a comma-separated tag list as typed in the form.
func ParseTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}

// lessFold orders strings case-insensitively, falling back to a
// case-sensitive comparison so the order is total.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// LessByName orders bookmarks by name, case-insensitively.
func LessByName(a, b Bookmark) bool {
	return lessFold(a.Name, b.Name)
}
