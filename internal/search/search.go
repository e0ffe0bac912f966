package search

import (
	"sort"
	"strings"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/sahilm/fuzzy"
)

// Field tiers. A bookmark is scored against the best field the query matches
// on its own, and the tier of that field dominates the fuzzy score: any name
// hit outranks any url hit, which outranks any description hit, and so on.
// Queries that only match across fields (e.g. "rust doc") land in TierAny.
const (
	TierAny = iota
	TierTags
	TierDesc
	TierURL
	TierName
)

// tierWidth is the score band each tier owns. Field scores are clamped into
// half of it so the haystack length penalty can never push a hit into the
// band of a lower tier.
const tierWidth = 1000

// Result is a bookmark in a filtered view together with its relevance score.
type Result struct {
	Bookmark model.Bookmark
	Score    int
}

// Match reports whether every character of query appears, in order, in haystack,
// ignoring case. The score rewards adjacent matches, matches at word boundaries
// and shorter haystacks. An empty query matches everything with a score of 0.
func Match(query, haystack string) (int, bool) {
	if query == "" {
		return 0, true
	}
	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(haystack)})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// ScoreBookmark matches query against each field of the bookmark and returns
// the tiered score of the best one. It reports false when the query matches
// nowhere, not even across fields.
func ScoreBookmark(query string, b model.Bookmark) (int, bool) {
	if query == "" {
		return 0, true
	}

	if score, ok := Match(query, b.Name); ok {
		return tiered(TierName, score), true
	}
	if score, ok := Match(query, b.URL); ok {
		return tiered(TierURL, score), true
	}
	if score, ok := Match(query, b.Desc); ok {
		return tiered(TierDesc, score), true
	}

	best, found := 0, false
	for _, tag := range b.Tags {
		if score, ok := Match(query, tag); ok && (!found || score > best) {
			best, found = score, true
		}
	}
	if found {
		return tiered(TierTags, best), true
	}

	if score, ok := Match(query, b.SearchText()); ok {
		return tiered(TierAny, score), true
	}
	return 0, false
}

func tiered(tier, score int) int {
	const limit = tierWidth/2 - 1
	score = max(-limit, min(score, limit))
	return tier*tierWidth + score
}

// ComputeView narrows bookmarks to those carrying tag (when non-empty) and
// matching query, ordered best first. Equal scores are ordered by name.
// With an empty query the result is simply sorted by name.
// The input slice is never modified.
func ComputeView(bookmarks []model.Bookmark, query, tag string) []Result {
	results := make([]Result, 0, len(bookmarks))
	for _, b := range bookmarks {
		if tag != "" && !b.HasTag(tag) {
			continue
		}
		score, ok := ScoreBookmark(query, b)
		if !ok {
			continue
		}
		results = append(results, Result{Bookmark: b, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return model.LessByName(results[i].Bookmark, results[j].Bookmark)
	})

	return results
}

// Bookmarks strips the scores from a view.
func Bookmarks(results []Result) []model.Bookmark {
	bookmarks := make([]model.Bookmark, len(results))
	for i, r := range results {
		bookmarks[i] = r.Bookmark
	}
	return bookmarks
}
