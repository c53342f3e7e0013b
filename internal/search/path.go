package search

import (
	"strings"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// PathOf returns the ancestor names of an item, outermost first (tab,
// then folders). The visited set terminates the walk on malformed
// stores that contain a parent cycle. Unknown ids yield nil.
func PathOf(db *store.DB, id string) []string {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return nil
	}
	it, found := db.FindItem(id)
	if !found {
		return nil
	}

	var names []string
	visited := map[string]bool{id: true}
	cur := it.ParentKey()
	for cur != model.RootID {
		if visited[cur] {
			break
		}
		visited[cur] = true
		parent, found := db.FindItem(cur)
		if !found {
			break
		}
		names = append(names, parent.Name)
		cur = parent.ParentKey()
	}

	// Walked leaf-to-root; callers want root-first.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Target describes where a matched item lives: the tab to switch to
// (model.RootID for the implicit root tab) and the ancestor folders
// that must be expanded, outermost first, for the item to be visible.
type Target struct {
	TabID     string   `json:"tabId"`
	FolderIDs []string `json:"folderIds"`
}

// NavigationTarget resolves the reveal plan for an item without
// re-deriving the whole render tree.
func NavigationTarget(db *store.DB, id string) (Target, bool) {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return Target{}, false
	}
	it, found := db.FindItem(id)
	if !found {
		return Target{}, false
	}
	if it.Kind == model.KindTab {
		return Target{TabID: it.ID}, true
	}

	t := Target{TabID: model.RootID}
	visited := map[string]bool{id: true}
	cur := it.ParentKey()
	for cur != model.RootID {
		if visited[cur] {
			break
		}
		visited[cur] = true
		parent, found := db.FindItem(cur)
		if !found {
			break
		}
		if parent.Kind == model.KindTab {
			t.TabID = parent.ID
			break
		}
		if parent.Kind == model.KindFolder {
			t.FolderIDs = append(t.FolderIDs, parent.ID)
		}
		cur = parent.ParentKey()
	}

	for i, j := 0, len(t.FolderIDs)-1; i < j; i, j = i+1, j-1 {
		t.FolderIDs[i], t.FolderIDs[j] = t.FolderIDs[j], t.FolderIDs[i]
	}
	return t, true
}
