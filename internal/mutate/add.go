package mutate

import (
	"strings"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// Add inserts a new item as the last sibling under parentID
// (model.RootID for top-level). Appending to the sequence makes it the
// last sibling by definition, since sequence order is sibling order.
//
// The returned item has its id assigned. ok is false when the parent
// reference is invalid; the store is left unchanged in that case.
func Add(db *store.DB, s store.Store, kind model.Kind, name, command, parentID string, now time.Time) (model.Item, bool) {
	if db == nil {
		return model.Item{}, false
	}
	parentID = strings.TrimSpace(parentID)

	var pid *string
	if kind == model.KindTab {
		// Tabs always sit at the root; a parent context is ignored.
		pid = nil
	} else if parentID != model.RootID {
		parent, found := db.FindItem(parentID)
		if !found || !parent.Kind.CanHaveChildren() {
			return model.Item{}, false
		}
		p := parent.ID
		pid = &p
	}

	it := model.Item{
		ID:        s.NextID(db, store.IDPrefix(kind)),
		Kind:      kind,
		Name:      name,
		ParentID:  pid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if kind == model.KindSnippet {
		it.Command = command
	}

	db.Items = append(db.Items, it)
	db.InvalidateIndexes()
	return it, true
}
