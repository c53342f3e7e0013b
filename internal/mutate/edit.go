package mutate

import (
	"strings"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

func Rename(db *store.DB, id, name string, now time.Time) bool {
	it, found := findForEdit(db, id)
	if !found {
		return false
	}
	it.Name = name
	it.UpdatedAt = now
	return true
}

// SetCommand updates a snippet's raw command string (placeholders and
// all). Non-snippets are a no-op.
func SetCommand(db *store.DB, id, command string, now time.Time) bool {
	it, found := findForEdit(db, id)
	if !found || it.Kind != model.KindSnippet {
		return false
	}
	it.Command = command
	it.UpdatedAt = now
	return true
}

func SetDescription(db *store.DB, id, description string, now time.Time) bool {
	it, found := findForEdit(db, id)
	if !found {
		return false
	}
	it.Description = description
	it.UpdatedAt = now
	return true
}

// ToggleExpanded flips a folder's open state. Expanded is UI state but
// lives on the item so it survives mutation and persistence.
func ToggleExpanded(db *store.DB, id string) bool {
	it, found := findForEdit(db, id)
	if !found || it.Kind != model.KindFolder {
		return false
	}
	it.Expanded = !it.Expanded
	return true
}

// SetExpanded forces a folder open or closed (used by reveal).
func SetExpanded(db *store.DB, id string, expanded bool) bool {
	it, found := findForEdit(db, id)
	if !found || it.Kind != model.KindFolder {
		return false
	}
	if it.Expanded == expanded {
		return false
	}
	it.Expanded = expanded
	return true
}

func findForEdit(db *store.DB, id string) (*model.Item, bool) {
	if db == nil {
		return nil, false
	}
	return db.FindItem(strings.TrimSpace(id))
}
