package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"snipbook-cli/internal/model"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// IDPrefix returns the id prefix used for a kind (snip/sep/fold/tab).
func IDPrefix(kind model.Kind) string {
	switch kind {
	case model.KindSnippet:
		return "snip"
	case model.KindSeparator:
		return "sep"
	case model.KindFolder:
		return "fold"
	case model.KindTab:
		return "tab"
	default:
		return "item"
	}
}

// NextID generates a fresh id that does not collide within db.
func (s Store) NextID(db *DB, prefix string) string {
	maxAttempts := 20
	var seq int
	for i := 0; i < maxAttempts; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			// crypto/rand failure: fall back to a counter scan.
			seq = len(db.Items) + i + 1
			id = fmt.Sprintf("%s-%d", prefix, seq)
		}
		if !idExists(db, id) {
			return id
		}
	}
	// Extremely unlikely fallback.
	for {
		seq++
		id := fmt.Sprintf("%s-%d", prefix, seq)
		if !idExists(db, id) {
			return id
		}
	}
}

func idExists(db *DB, id string) bool {
	if db == nil {
		return false
	}
	for _, it := range db.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}
