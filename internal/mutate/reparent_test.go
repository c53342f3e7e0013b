package mutate

import (
	"testing"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

func sp(s string) *string { return &s }

func mk(id string, kind model.Kind, parent *string) model.Item {
	return model.Item{ID: id, Kind: kind, Name: id, ParentID: parent}
}

// tab-a > fold-a > (snip-a, snip-b), tab-a > snip-c, tab-b
func moveTree() *store.DB {
	return &store.DB{Items: []model.Item{
		mk("tab-a", model.KindTab, nil),
		mk("fold-a", model.KindFolder, sp("tab-a")),
		mk("snip-a", model.KindSnippet, sp("fold-a")),
		mk("snip-b", model.KindSnippet, sp("fold-a")),
		mk("snip-c", model.KindSnippet, sp("tab-a")),
		mk("tab-b", model.KindTab, nil),
	}}
}

func order(db *store.DB) []string {
	out := make([]string, 0, len(db.Items))
	for _, it := range db.Items {
		out = append(out, it.ID)
	}
	return out
}

func assertOrder(t *testing.T, db *store.DB, want ...string) {
	t.Helper()
	got := order(db)
	if len(got) != len(want) {
		t.Fatalf("order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestReparent_BeforeAdoptsReferenceParent(t *testing.T) {
	db := moveTree()
	now := time.Now()

	if !Reparent(db, "snip-c", PositionBefore, "snip-b", now) {
		t.Fatalf("move failed")
	}
	assertOrder(t, db, "tab-a", "fold-a", "snip-a", "snip-c", "snip-b", "tab-b")

	it, _ := db.FindItem("snip-c")
	if it.ParentKey() != "fold-a" {
		t.Fatalf("snip-c parent = %q, want fold-a", it.ParentKey())
	}
	if !it.UpdatedAt.Equal(now) {
		t.Fatalf("moved node should be touched")
	}
}

func TestReparent_AfterMovesSubtreeBlock(t *testing.T) {
	db := moveTree()

	// Moving the folder moves its children with it, order intact.
	if !Reparent(db, "fold-a", PositionAfter, "snip-c", time.Now()) {
		t.Fatalf("move failed")
	}
	assertOrder(t, db, "tab-a", "snip-c", "fold-a", "snip-a", "snip-b", "tab-b")

	a, _ := db.FindItem("snip-a")
	if a.ParentKey() != "fold-a" {
		t.Fatalf("children must stay attached, got parent %q", a.ParentKey())
	}
}

func TestReparent_InsideFolderForcesOpen(t *testing.T) {
	db := moveTree()

	if !Reparent(db, "snip-c", PositionInside, "fold-a", time.Now()) {
		t.Fatalf("move failed")
	}
	it, _ := db.FindItem("snip-c")
	if it.ParentKey() != "fold-a" {
		t.Fatalf("parent = %q", it.ParentKey())
	}
	fold, _ := db.FindItem("fold-a")
	if !fold.Expanded {
		t.Fatalf("drop target folder should be revealed")
	}
	// Lands as the first child, right after the folder row.
	kids := db.ChildrenOf("fold-a")
	if len(kids) != 3 || kids[0].ID != "snip-c" {
		t.Fatalf("children: %v", order(&store.DB{Items: kids}))
	}
}

func TestReparent_InsideLeafRejected(t *testing.T) {
	db := moveTree()
	if Reparent(db, "snip-a", PositionInside, "snip-b", time.Now()) {
		t.Fatalf("snippets cannot take children")
	}
}

func TestReparent_CycleRejected(t *testing.T) {
	db := moveTree()

	if Reparent(db, "fold-a", PositionInside, "fold-a", time.Now()) {
		t.Fatalf("self drop must be rejected")
	}
	if Reparent(db, "fold-a", PositionBefore, "snip-a", time.Now()) {
		t.Fatalf("dropping a folder next to its own child re-parents it into itself")
	}
	assertOrder(t, db, "tab-a", "fold-a", "snip-a", "snip-b", "snip-c", "tab-b")
}

func TestReparent_TwoStepEscapeStillWorks(t *testing.T) {
	// The cycle guard must not strand a subtree: pulling the child out
	// first makes the second move legal.
	db := moveTree()
	now := time.Now()

	if !Reparent(db, "snip-a", PositionAfter, "fold-a", now) {
		t.Fatalf("step 1 failed")
	}
	if !Reparent(db, "fold-a", PositionBefore, "snip-a", now) {
		t.Fatalf("step 2 failed")
	}
	a, _ := db.FindItem("snip-a")
	if a.ParentKey() != "tab-a" {
		t.Fatalf("snip-a parent = %q", a.ParentKey())
	}
}

func TestReparent_TabsOnlyReorderAmongTabs(t *testing.T) {
	db := moveTree()

	if Reparent(db, "tab-b", PositionInside, "fold-a", time.Now()) {
		t.Fatalf("tabs must not nest")
	}
	if Reparent(db, "tab-b", PositionAfter, "snip-c", time.Now()) {
		t.Fatalf("tabs may only target other tabs")
	}
	if !Reparent(db, "tab-b", PositionBefore, "tab-a", time.Now()) {
		t.Fatalf("tab reorder failed")
	}
	tabs := db.Tabs()
	if tabs[0].ID != "tab-b" || tabs[1].ID != "tab-a" {
		t.Fatalf("tab order: %v", []string{tabs[0].ID, tabs[1].ID})
	}
	b, _ := db.FindItem("tab-b")
	if b.ParentID != nil {
		t.Fatalf("tab gained a parent: %+v", b)
	}
}

func TestReparent_UnknownIDsAreNoOps(t *testing.T) {
	db := moveTree()
	before := order(db)

	for _, c := range [][2]string{
		{"snip-zzz", "snip-a"},
		{"snip-a", "snip-zzz"},
		{"", "snip-a"},
		{"snip-a", "snip-a"},
	} {
		if Reparent(db, c[0], PositionAfter, c[1], time.Now()) {
			t.Fatalf("move %v should be a no-op", c)
		}
	}
	assertOrder(t, db, before...)
}

func TestParsePosition(t *testing.T) {
	if p, ok := ParsePosition(" Before "); !ok || p != PositionBefore {
		t.Fatalf("got %v %v", p, ok)
	}
	if _, ok := ParsePosition("sideways"); ok {
		t.Fatalf("bad position accepted")
	}
}
