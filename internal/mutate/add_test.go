package mutate

import (
	"strings"
	"testing"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

func TestAdd_AppendsAsLastSibling(t *testing.T) {
	db := moveTree()
	s := store.Store{}

	it, ok := Add(db, s, model.KindSnippet, "New", "echo hi", "fold-a", time.Now())
	if !ok {
		t.Fatalf("add failed")
	}
	if !strings.HasPrefix(it.ID, "snip-") {
		t.Fatalf("id = %q", it.ID)
	}
	if it.Command != "echo hi" {
		t.Fatalf("command = %q", it.Command)
	}
	kids := db.ChildrenOf("fold-a")
	if kids[len(kids)-1].ID != it.ID {
		t.Fatalf("new item must be the last sibling, got %+v", kids)
	}
}

func TestAdd_RootAndTabContext(t *testing.T) {
	db := moveTree()
	s := store.Store{}

	rootItem, ok := Add(db, s, model.KindSnippet, "Top", "", model.RootID, time.Now())
	if !ok || rootItem.ParentID != nil {
		t.Fatalf("root add: ok=%v item=%+v", ok, rootItem)
	}

	// Tabs ignore the parent context entirely.
	tab, ok := Add(db, s, model.KindTab, "T2", "", "fold-a", time.Now())
	if !ok || tab.ParentID != nil {
		t.Fatalf("tab add: ok=%v item=%+v", ok, tab)
	}
	tabs := db.Tabs()
	if tabs[len(tabs)-1].ID != tab.ID {
		t.Fatalf("new tab should be last: %+v", tabs)
	}
}

func TestAdd_RejectsBadParents(t *testing.T) {
	db := moveTree()
	s := store.Store{}
	n := len(db.Items)

	if _, ok := Add(db, s, model.KindSnippet, "X", "", "snip-a", time.Now()); ok {
		t.Fatalf("snippets cannot be parents")
	}
	if _, ok := Add(db, s, model.KindFolder, "X", "", "fold-zzz", time.Now()); ok {
		t.Fatalf("unknown parent accepted")
	}
	if len(db.Items) != n {
		t.Fatalf("store changed on rejected add")
	}
}

func TestAdd_CommandOnlyOnSnippets(t *testing.T) {
	db := moveTree()
	it, ok := Add(db, store.Store{}, model.KindFolder, "F", "should be dropped", "tab-a", time.Now())
	if !ok {
		t.Fatalf("add failed")
	}
	if it.Command != "" {
		t.Fatalf("folders must not carry commands: %+v", it)
	}
}
