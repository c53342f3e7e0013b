package dispatch

import (
	"fmt"
	"testing"
	"time"

	"snipbook-cli/internal/model"
)

func TestRecord_MostRecentFirst(t *testing.T) {
	now := time.Now()
	var h []model.HistoryEntry
	h = Record(h, model.HistoryKindCommand, "a", 10, now)
	h = Record(h, model.HistoryKindCommand, "b", 10, now.Add(time.Second))

	if len(h) != 2 || h[0].Value != "b" || h[1].Value != "a" {
		t.Fatalf("history: %+v", h)
	}
}

func TestRecord_DedupeMovesToFront(t *testing.T) {
	now := time.Now()
	var h []model.HistoryEntry
	h = Record(h, model.HistoryKindCommand, "a", 10, now)
	h = Record(h, model.HistoryKindCommand, "b", 10, now)
	h = Record(h, model.HistoryKindCommand, "a", 10, now.Add(time.Minute))

	if len(h) != 2 {
		t.Fatalf("duplicate kept: %+v", h)
	}
	if h[0].Value != "a" || h[1].Value != "b" {
		t.Fatalf("dedupe must move to front: %+v", h)
	}
	if !h[0].RecordedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("re-record must refresh the timestamp: %+v", h[0])
	}
}

func TestRecord_KindsAreDistinct(t *testing.T) {
	now := time.Now()
	var h []model.HistoryEntry
	h = Record(h, model.HistoryKindCommand, "x", 10, now)
	h = Record(h, model.HistoryKindClipboard, "x", 10, now)

	if len(h) != 2 {
		t.Fatalf("same value under different kinds must coexist: %+v", h)
	}
}

func TestRecord_Bounded(t *testing.T) {
	now := time.Now()
	var h []model.HistoryEntry
	for i := 0; i < 10; i++ {
		h = Record(h, model.HistoryKindCommand, fmt.Sprintf("cmd-%d", i), 3, now)
	}
	if len(h) != 3 {
		t.Fatalf("len = %d", len(h))
	}
	if h[0].Value != "cmd-9" || h[2].Value != "cmd-7" {
		t.Fatalf("oldest entries must be dropped: %+v", h)
	}
}

func TestRecord_DefaultLimit(t *testing.T) {
	var h []model.HistoryEntry
	for i := 0; i < model.DefaultHistoryLimit+5; i++ {
		h = Record(h, model.HistoryKindCommand, fmt.Sprintf("cmd-%d", i), 0, time.Now())
	}
	if len(h) != model.DefaultHistoryLimit {
		t.Fatalf("len = %d, want %d", len(h), model.DefaultHistoryLimit)
	}
}
