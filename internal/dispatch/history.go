package dispatch

import (
	"time"

	"snipbook-cli/internal/model"
)

// Record prepends an entry to the bounded most-recent-first history.
// A duplicate (same kind and value) moves to the front instead of
// appearing twice; entries beyond limit are dropped oldest-first.
func Record(history []model.HistoryEntry, kind model.HistoryKind, value string, limit int, now time.Time) []model.HistoryEntry {
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}

	out := make([]model.HistoryEntry, 0, len(history)+1)
	out = append(out, model.HistoryEntry{Kind: kind, Value: value, RecordedAt: now})
	for _, e := range history {
		if e.Kind == kind && e.Value == value {
			continue
		}
		out = append(out, e)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
