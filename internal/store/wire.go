package store

import (
	"encoding/json"
	"strings"

	"snipbook-cli/internal/model"
)

// loadWireDB parses the external JSON wire shape ({items, settings,
// history}). Older exports used "snippets" for the items array and bare
// string parent ids; both are accepted.
func loadWireDB(b []byte) (DB, error) {
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{}, err
	}

	if len(db.Items) == 0 {
		var legacy struct {
			Snippets []model.Item `json:"snippets"`
		}
		if err := json.Unmarshal(b, &legacy); err == nil && len(legacy.Snippets) > 0 {
			db.Items = legacy.Snippets
		}
	}

	// Normalize: empty-string parents become nil so ParentKey has one
	// representation on the wire going forward.
	for i := range db.Items {
		if db.Items[i].ParentID != nil && strings.TrimSpace(*db.Items[i].ParentID) == "" {
			db.Items[i].ParentID = nil
		}
		if db.Items[i].Kind == model.KindTab {
			// Tabs are never nested; drop any stray parent reference.
			db.Items[i].ParentID = nil
		}
	}

	return db, nil
}

// MarshalWire renders db in the persistence collaborator's wire shape.
func MarshalWire(db *DB, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(db, "", "  ")
	}
	return json.Marshal(db)
}

// UnmarshalWire is the inverse of MarshalWire.
func UnmarshalWire(b []byte) (*DB, error) {
	db, err := loadWireDB(b)
	if err != nil {
		return nil, err
	}
	db.EnsureDefaults()
	return &db, nil
}
