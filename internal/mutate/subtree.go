package mutate

import (
	"strings"

	"snipbook-cli/internal/store"
)

// CollectSubtreeIDs returns rootID plus every descendant id, in
// depth-first sequence order. The seen set terminates the walk even on
// a corrupted store with a parent cycle.
func CollectSubtreeIDs(db *store.DB, rootID string) []string {
	rootID = strings.TrimSpace(rootID)
	if db == nil || rootID == "" {
		return nil
	}
	out := []string{}
	seen := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		for _, ch := range db.ChildrenOf(id) {
			walk(ch.ID)
		}
	}
	walk(rootID)
	return out
}
