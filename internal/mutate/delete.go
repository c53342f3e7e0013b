package mutate

import (
	"strings"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// Delete removes one item. Deleting a folder or tab never deletes its
// descendants: direct children are promoted to the deleted item's own
// parent, keeping their relative sequence order. If the deleted item
// was the active tab, the active view falls back to the root view, or
// failing that the first remaining tab.
func Delete(db *store.DB, id string, now time.Time) bool {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return false
	}
	it, found := db.FindItem(id)
	if !found {
		return false
	}

	var promoted *string
	if pk := it.ParentKey(); pk != model.RootID {
		p := pk
		promoted = &p
	}

	if it.Kind.CanHaveChildren() {
		for i := range db.Items {
			if db.Items[i].ParentKey() == id {
				db.Items[i].ParentID = promoted
				db.Items[i].UpdatedAt = now
			}
		}
	}

	next := make([]model.Item, 0, len(db.Items)-1)
	for _, x := range db.Items {
		if x.ID != id {
			next = append(next, x)
		}
	}
	db.Items = next
	db.InvalidateIndexes()

	if db.Settings.ActiveTabID == id {
		db.Settings.ActiveTabID = model.RootID
		if !db.HasRootItems() {
			if tabs := db.Tabs(); len(tabs) > 0 {
				db.Settings.ActiveTabID = tabs[0].ID
			}
		}
	}
	return true
}
