// Package search provides read-only queries over a snippet store:
// substring search with highlight spans, ancestor paths, and the
// navigation targets that make "jump to search result" work.
package search

import (
	"strings"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// Span is the first occurrence of the query within the item name, for
// display highlighting. Zero when the hit is only in the command or
// description.
type Span struct {
	Start int `json:"start"`
	Len   int `json:"len"`
}

type Match struct {
	Item model.Item `json:"item"`
	Span Span       `json:"span"`
}

// Search returns items whose name, command or description contains the
// query, case-insensitively, in store sequence order (no relevance
// ranking). Separators never match. An empty or blank query matches
// nothing; there is no failure mode.
func Search(db *store.DB, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if db == nil || q == "" {
		return nil
	}

	var out []Match
	for _, it := range db.Items {
		if it.Kind == model.KindSeparator {
			continue
		}
		name := strings.ToLower(it.Name)
		if idx := strings.Index(name, q); idx >= 0 {
			out = append(out, Match{Item: it, Span: Span{Start: idx, Len: len(q)}})
			continue
		}
		if strings.Contains(strings.ToLower(it.Command), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, Match{Item: it})
		}
	}
	return out
}
