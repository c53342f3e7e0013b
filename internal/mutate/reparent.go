package mutate

import (
	"strings"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"
)

// Position says where the moved node lands relative to the reference
// item: adjacent in the sequence as a sibling, or as a child.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionInside Position = "inside"
)

func ParsePosition(s string) (Position, bool) {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case PositionBefore:
		return PositionBefore, true
	case PositionAfter:
		return PositionAfter, true
	case PositionInside:
		return PositionInside, true
	}
	return "", false
}

// Reparent moves nodeID relative to refID. It is a total function over
// a possibly-inconsistent store: invalid ids, self-drops and cycle
// attempts leave the store unchanged and report changed=false. The
// origin of these calls is a user gesture that cannot usefully be
// retried, so nothing is surfaced as an error.
//
// Rules:
//   - PositionInside requires a container reference (folder, or tab for
//     "drop on tab header" moves); a folder target is forced open.
//   - PositionBefore/After makes the node a sibling of the reference and
//     splices it (with its whole subtree block) immediately before/after
//     the reference row. The reference index is recomputed after the
//     block is removed, since removal shifts indices.
//   - Tabs only ever reorder among tabs; their parent never changes.
func Reparent(db *store.DB, nodeID string, pos Position, refID string, now time.Time) bool {
	nodeID = strings.TrimSpace(nodeID)
	refID = strings.TrimSpace(refID)
	if db == nil || nodeID == "" || refID == "" || nodeID == refID {
		return false
	}

	node, found := db.FindItem(nodeID)
	if !found {
		return false
	}
	ref, found := db.FindItem(refID)
	if !found {
		return false
	}

	// A node may never end up inside its own subtree. This also covers
	// the before/after case where the reference's parent chain passes
	// through the node.
	if db.IsDescendant(nodeID, refID) {
		return false
	}

	if node.Kind == model.KindTab {
		if ref.Kind != model.KindTab || pos == PositionInside {
			return false
		}
		return spliceAdjacent(db, node, pos, refID, nil, now)
	}

	switch pos {
	case PositionInside:
		if !ref.Kind.CanHaveChildren() {
			return false
		}
		if ref.Kind == model.KindFolder && !ref.Expanded {
			// Auto-reveal so the drop result is visible.
			ref.Expanded = true
		}
		pid := ref.ID
		return spliceAdjacent(db, node, PositionAfter, refID, &pid, now)
	case PositionBefore, PositionAfter:
		var pid *string
		if pk := ref.ParentKey(); pk != model.RootID {
			p := pk
			pid = &p
		}
		return spliceAdjacent(db, node, pos, refID, pid, now)
	default:
		return false
	}
}

// spliceAdjacent removes the node's subtree block from the sequence and
// reinserts it next to the reference row, updating the node's parent.
func spliceAdjacent(db *store.DB, node *model.Item, pos Position, refID string, parentID *string, now time.Time) bool {
	nodeID := node.ID
	block := CollectSubtreeIDs(db, nodeID)
	inBlock := map[string]bool{}
	for _, id := range block {
		inBlock[id] = true
	}

	moved := make([]model.Item, 0, len(block))
	rest := make([]model.Item, 0, len(db.Items)-len(block))
	for _, it := range db.Items {
		if inBlock[it.ID] {
			moved = append(moved, it)
		} else {
			rest = append(rest, it)
		}
	}
	if len(moved) == 0 {
		return false
	}

	for i := range moved {
		if moved[i].ID == nodeID {
			moved[i].ParentID = parentID
			moved[i].UpdatedAt = now
			break
		}
	}

	// Reference position is computed on the remainder, after removal.
	refIdx := -1
	for i := range rest {
		if rest[i].ID == refID {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return false
	}
	at := refIdx
	if pos == PositionAfter {
		at = refIdx + 1
	}

	next := make([]model.Item, 0, len(db.Items))
	next = append(next, rest[:at]...)
	next = append(next, moved...)
	next = append(next, rest[at:]...)
	db.Items = next
	db.InvalidateIndexes()
	return true
}
