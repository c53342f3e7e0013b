package store

import (
	"strings"
	"testing"

	"snipbook-cli/internal/model"
)

func TestIDPrefix(t *testing.T) {
	cases := map[model.Kind]string{
		model.KindSnippet:   "snip",
		model.KindSeparator: "sep",
		model.KindFolder:    "fold",
		model.KindTab:       "tab",
		model.Kind("other"): "item",
	}
	for kind, want := range cases {
		if got := IDPrefix(kind); got != want {
			t.Errorf("IDPrefix(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestNextID_ShapeAndUniqueness(t *testing.T) {
	s := Store{}
	db := &DB{}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.NextID(db, "snip")
		if !strings.HasPrefix(id, "snip-") {
			t.Fatalf("bad prefix: %q", id)
		}
		if len(id) != len("snip-")+8 {
			t.Fatalf("bad length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
		db.Items = append(db.Items, model.Item{ID: id, Kind: model.KindSnippet})
	}
}
