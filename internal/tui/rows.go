package tui

import (
	"regexp"
	"strings"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// row is one visible line of the outline for the active tab: an item plus
// the derived rendering facts (depth, whether a twisty is shown).
type row struct {
	item        model.Item
	depth       int
	hasChildren bool
}

// visibleRows flattens the active tab's subtree into display order.
// Collapsed folders contribute a single row. A seen set keeps traversal
// finite even if the store carries a parent cycle.
func visibleRows(db *store.DB, tabID string) []row {
	var out []row
	seen := map[string]bool{}
	appendLevel(db, tabID, 0, seen, &out)
	return out
}

func appendLevel(db *store.DB, parentID string, depth int, seen map[string]bool, out *[]row) {
	for _, it := range db.ChildrenOf(parentID) {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		kids := it.Kind == model.KindFolder && len(db.ChildrenOf(it.ID)) > 0
		*out = append(*out, row{item: it, depth: depth, hasChildren: kids})

		if it.Kind == model.KindFolder && it.Expanded {
			appendLevel(db, it.ID, depth+1, seen, out)
		}
	}
}

// rowIndexOf returns the position of id in rows, or -1.
func rowIndexOf(rows []row, id string) int {
	for i, r := range rows {
		if r.item.ID == id {
			return i
		}
	}
	return -1
}

// Names may embed [icon:...] tokens; they are display-only and resolved
// here, never in the engine. Unknown tokens are dropped rather than shown raw.
var iconTokenRe = regexp.MustCompile(`\[icon:([a-z0-9-]+)\]\s*`)

var iconGlyphs = map[string]string{
	"terminal": "",
	"folder":   "",
	"star":     "★",
	"bolt":     "⚡",
	"gear":     "⚙",
	"cloud":    "☁",
	"db":       "🛢",
	"git":      "",
	"docker":   "🐳",
	"key":      "🔑",
}

func resolveIcons(name string) string {
	out := iconTokenRe.ReplaceAllStringFunc(name, func(tok string) string {
		sub := iconTokenRe.FindStringSubmatch(tok)
		if g, ok := iconGlyphs[sub[1]]; ok {
			return g + " "
		}
		return ""
	})
	return strings.TrimSpace(out)
}

// displayName gives the rendered label for an item, falling back to a
// kind-specific placeholder for unnamed items.
func displayName(it model.Item) string {
	name := resolveIcons(it.Name)
	if name != "" {
		return name
	}
	switch it.Kind {
	case model.KindSeparator:
		return ""
	case model.KindFolder:
		return "(untitled folder)"
	case model.KindTab:
		return "(untitled tab)"
	default:
		return "(untitled)"
	}
}
