package mutate

import (
	"strings"
	"time"

	"snipbook-cli/internal/store"
)

// ColorCascade sets color on an item; with recursive it applies the
// same color to the whole subtree. Uses the same visited-guarded walk
// as CollectSubtreeIDs, so a corrupted store cannot hang it.
func ColorCascade(db *store.DB, id, color string, recursive bool, now time.Time) bool {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return false
	}
	it, found := db.FindItem(id)
	if !found {
		return false
	}

	ids := []string{it.ID}
	if recursive {
		ids = CollectSubtreeIDs(db, it.ID)
	}
	for _, x := range ids {
		if target, found := db.FindItem(x); found {
			target.Color = color
			target.UpdatedAt = now
		}
	}
	return true
}
