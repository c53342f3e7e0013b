package mutate

import (
	"testing"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

func TestRenameAndDescribe(t *testing.T) {
	db := moveTree()
	now := time.Now()

	if !Rename(db, "snip-a", "List files", now) {
		t.Fatalf("rename failed")
	}
	if !SetDescription(db, "snip-a", "plain ls", now) {
		t.Fatalf("describe failed")
	}
	it, _ := db.FindItem("snip-a")
	if it.Name != "List files" || it.Description != "plain ls" {
		t.Fatalf("got %+v", it)
	}

	if Rename(db, "snip-zzz", "x", now) {
		t.Fatalf("unknown id accepted")
	}
}

func TestSetCommand_SnippetOnly(t *testing.T) {
	db := moveTree()
	now := time.Now()

	if !SetCommand(db, "snip-a", "ls -la", now) {
		t.Fatalf("set command failed")
	}
	it, _ := db.FindItem("snip-a")
	if it.Command != "ls -la" {
		t.Fatalf("command = %q", it.Command)
	}

	if SetCommand(db, "fold-a", "rm -rf /", now) {
		t.Fatalf("folders must reject commands")
	}
}

func TestExpandedState(t *testing.T) {
	db := moveTree()

	if !ToggleExpanded(db, "fold-a") {
		t.Fatalf("toggle failed")
	}
	it, _ := db.FindItem("fold-a")
	if !it.Expanded {
		t.Fatalf("folder should be open")
	}

	if SetExpanded(db, "fold-a", true) {
		t.Fatalf("no-change SetExpanded should report false")
	}
	if !SetExpanded(db, "fold-a", false) {
		t.Fatalf("close failed")
	}
	if ToggleExpanded(db, "snip-a") {
		t.Fatalf("snippets have no expanded state")
	}
}

func TestColorCascade(t *testing.T) {
	db := moveTree()
	now := time.Now()

	if !ColorCascade(db, "fold-a", "205", false, now) {
		t.Fatalf("color failed")
	}
	a, _ := db.FindItem("snip-a")
	if a.Color != "" {
		t.Fatalf("non-recursive color leaked to children")
	}

	if !ColorCascade(db, "fold-a", "99", true, now) {
		t.Fatalf("cascade failed")
	}
	for _, id := range []string{"fold-a", "snip-a", "snip-b"} {
		it, _ := db.FindItem(id)
		if it.Color != "99" {
			t.Fatalf("%s color = %q", id, it.Color)
		}
	}
	c, _ := db.FindItem("snip-c")
	if c.Color != "" {
		t.Fatalf("cascade crossed subtree boundary")
	}

	// Empty color clears.
	if !ColorCascade(db, "fold-a", "", true, now) {
		t.Fatalf("clear failed")
	}
	b, _ := db.FindItem("snip-b")
	if b.Color != "" {
		t.Fatalf("color not cleared: %+v", b)
	}
}

func TestCollectSubtreeIDs_TerminatesOnCycle(t *testing.T) {
	db := &store.DB{Items: []model.Item{
		mk("fold-x", model.KindFolder, sp("fold-y")),
		mk("fold-y", model.KindFolder, sp("fold-x")),
		mk("snip-z", model.KindSnippet, sp("fold-x")),
	}}
	ids := CollectSubtreeIDs(db, "fold-x")
	if len(ids) != 3 {
		t.Fatalf("subtree ids: %v", ids)
	}
	if ids[0] != "fold-x" {
		t.Fatalf("root must come first: %v", ids)
	}
}
