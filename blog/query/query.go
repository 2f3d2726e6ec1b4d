// Package query derives filtered and sorted views over a post collection
// without mutating it. It has no failure modes: absent or malformed input
// degrades to "no filter" rather than an error.
package query

import (
	"sort"
	"strings"

	"github.com/masterblog/masterblog/blog/domain"
)

// Criteria holds per-field substring filter terms. Empty terms impose no
// constraint; a post matches when every non-empty term appears as a
// case-insensitive substring of that field.
type Criteria struct {
	Title   string
	Content string
	Author  string
	Date    string
}

func (c Criteria) empty() bool {
	return c.Title == "" && c.Content == "" && c.Author == "" && c.Date == ""
}

// Search returns the posts matching all criteria, preserving collection
// order. With no criteria every post matches.
func Search(posts []domain.Post, c Criteria) []domain.Post {
	matched := make([]domain.Post, 0, len(posts))
	if c.empty() {
		return append(matched, posts...)
	}

	for _, p := range posts {
		if contains(p.Title, c.Title) &&
			contains(p.Content, c.Content) &&
			contains(p.Author, c.Author) &&
			contains(p.Date, c.Date) {
			matched = append(matched, p)
		}
	}
	return matched
}

func contains(value, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

// Sort returns a copy of posts ordered by the given field. Comparison is
// case-insensitive lexicographic; equal keys keep their relative order.
// ISO dates order correctly under string comparison, which is why dates are
// not parsed here. An unknown field falls back to date; any direction other
// than "desc" sorts ascending.
func Sort(posts []domain.Post, field, direction string) []domain.Post {
	key := keyFunc(field)
	desc := strings.EqualFold(direction, "desc")

	sorted := append(make([]domain.Post, 0, len(posts)), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := strings.ToLower(key(sorted[i])), strings.ToLower(key(sorted[j]))
		if desc {
			return a > b
		}
		return a < b
	})
	return sorted
}

func keyFunc(field string) func(domain.Post) string {
	switch strings.ToLower(field) {
	case "title":
		return func(p domain.Post) string { return p.Title }
	case "content":
		return func(p domain.Post) string { return p.Content }
	case "author":
		return func(p domain.Post) string { return p.Author }
	default:
		return func(p domain.Post) string { return p.Date }
	}
}
