package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"snipbook-cli/internal/model"
)

const (
	dbFileName     = "db.json"
	sqliteFileName = "state.sqlite"
)

// DB is the full in-memory state of one workspace. The sequence order of
// Items is significant: it defines sibling order and rendering order.
type DB struct {
	Version  int                  `json:"version"`
	Settings model.Settings       `json:"settings"`
	Items    []model.Item         `json:"items"`
	History  []model.HistoryEntry `json:"history,omitempty"`

	// Derived children index for read paths. Not persisted; mutations
	// must call InvalidateIndexes.
	idxBuilt            bool                    `json:"-"`
	idxChildrenByParent map[string][]model.Item `json:"-"`
}

type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".snipbook")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".snipbook"), nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// SQLite is the source of truth. LoadSQLite auto-imports a legacy
	// db.json once when the SQLite state is still empty.
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// FindItem returns a pointer into db.Items. Absence is a valid outcome
// callers must treat as "no-op"; it is never an error.
func (db *DB) FindItem(id string) (*model.Item, bool) {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return nil, false
	}
	for i := range db.Items {
		if db.Items[i].ID == id {
			return &db.Items[i], true
		}
	}
	return nil, false
}

// ItemIndex returns the sequence position of an item, or -1.
func (db *DB) ItemIndex(id string) int {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return -1
	}
	for i := range db.Items {
		if db.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// InvalidateIndexes must be called after any structural mutation.
func (db *DB) InvalidateIndexes() {
	if db == nil {
		return
	}
	db.idxBuilt = false
	db.idxChildrenByParent = nil
}

func (db *DB) ensureIndexes() {
	if db == nil || db.idxBuilt {
		return
	}
	db.idxChildrenByParent = map[string][]model.Item{}
	for _, it := range db.Items {
		db.idxChildrenByParent[it.ParentKey()] = append(db.idxChildrenByParent[it.ParentKey()], it)
	}
	db.idxBuilt = true
}

// ChildrenOf returns the direct children of parentID (model.RootID for
// top-level items) in sequence order. Tabs are excluded unless KindTab
// is explicitly requested: tabs are never children of content listings.
// When kinds is non-empty it also acts as a filter.
func (db *DB) ChildrenOf(parentID string, kinds ...model.Kind) []model.Item {
	if db == nil {
		return nil
	}
	db.ensureIndexes()

	wantTab := false
	want := map[model.Kind]bool{}
	for _, k := range kinds {
		want[k] = true
		if k == model.KindTab {
			wantTab = true
		}
	}

	var out []model.Item
	for _, it := range db.idxChildrenByParent[strings.TrimSpace(parentID)] {
		if it.Kind == model.KindTab && !wantTab {
			continue
		}
		if len(want) > 0 && !want[it.Kind] {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Tabs returns all tab items in sequence order.
func (db *DB) Tabs() []model.Item {
	if db == nil {
		return nil
	}
	var out []model.Item
	for _, it := range db.Items {
		if it.Kind == model.KindTab {
			out = append(out, it)
		}
	}
	return out
}

// HasRootItems reports whether any non-tab item sits directly under the
// virtual root. The implicit root tab exists only in that case.
func (db *DB) HasRootItems() bool {
	if db == nil {
		return false
	}
	for _, it := range db.Items {
		if it.Kind != model.KindTab && it.ParentKey() == model.RootID {
			return true
		}
	}
	return false
}

// IsDescendant reports whether nodeID sits inside ancestorID's subtree
// (nodeID itself counts). The visited set makes the walk terminate even
// on a corrupted store that contains a parent cycle.
func (db *DB) IsDescendant(ancestorID, nodeID string) bool {
	ancestorID = strings.TrimSpace(ancestorID)
	nodeID = strings.TrimSpace(nodeID)
	if db == nil || ancestorID == "" || nodeID == "" {
		return false
	}

	visited := map[string]bool{}
	cur := nodeID
	for cur != "" {
		if cur == ancestorID {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		it, ok := db.FindItem(cur)
		if !ok {
			return false
		}
		cur = it.ParentKey()
	}
	return false
}

// EnsureDefaults fills settings the UI relies on.
func (db *DB) EnsureDefaults() {
	if db == nil {
		return
	}
	if db.Version == 0 {
		db.Version = 1
	}
	if db.Settings.ExecMode == "" {
		db.Settings.ExecMode = model.ExecModeTerminal
	}
	if db.Settings.HistoryLimit <= 0 {
		db.Settings.HistoryLimit = model.DefaultHistoryLimit
	}
}
