package model

import "time"

type Kind string

const (
	KindSnippet   Kind = "snippet"
	KindSeparator Kind = "separator"
	KindFolder    Kind = "folder"
	KindTab       Kind = "tab"
)

// CanHaveChildren reports whether items of this kind may be parents.
// Snippets and separators are always leaves.
func (k Kind) CanHaveChildren() bool {
	return k == KindFolder || k == KindTab
}

// RootID is the reserved sentinel for "no parent" (the virtual root).
const RootID = ""

// Item is the only tree entity: snippets, separators, folders and tabs
// all live in one flat ordered collection, linked by ParentID.
type Item struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// Name may embed [icon:...] tokens; they are resolved at render
	// time and opaque to the engine.
	Name        string `json:"name"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`

	// ParentID of nil (or "") means the item is a top-level child of
	// the virtual root for its kind partition. Tabs never have a parent.
	ParentID *string `json:"parentId,omitempty"`

	// Expanded is folder-only UI state; it must survive mutations.
	Expanded bool `json:"expanded,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParentKey collapses the nil-vs-empty ambiguity of ParentID into the
// RootID sentinel. All parent comparisons go through this.
func (it Item) ParentKey() string {
	if it.ParentID == nil {
		return RootID
	}
	return *it.ParentID
}

type ExecMode string

const (
	ExecModeTerminal ExecMode = "terminal"
	ExecModeEditor   ExecMode = "editor"
	ExecModeLocked   ExecMode = "locked"
)

type Settings struct {
	ExecMode     ExecMode `json:"execMode,omitempty"`
	HistoryLimit int      `json:"historyLimit,omitempty"`

	// ActiveTabID is the tab currently shown; "" means the implicit
	// root tab (top-level items without a parent).
	ActiveTabID string `json:"activeTabId,omitempty"`
}

const DefaultHistoryLimit = 20

type HistoryKind string

const (
	HistoryKindCommand   HistoryKind = "command"
	HistoryKindClipboard HistoryKind = "clipboard"
)

type HistoryEntry struct {
	Kind       HistoryKind `json:"kind"`
	Value      string      `json:"value"`
	RecordedAt time.Time   `json:"recordedAt"`
}
