package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"snipbook-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			name TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id);`,
		`CREATE TABLE IF NOT EXISTS history (
			seq INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			recorded_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	for _, t := range []string{"items", "state_meta", "history"} {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+t).Scan(&n); err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// LoadSQLite loads the workspace state from <dir>/state.sqlite. If the
// SQLite state is empty but a legacy db.json exists, it imports db.json
// once (preserving existing data) and then loads from SQLite.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			legacy, err := loadWireDB(b)
			if err != nil {
				return nil, err
			}
			legacy.EnsureDefaults()
			if err := s.SaveSQLite(ctx, &legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	settingsJSON, err := json.Marshal(st.Settings)
	if err != nil {
		return err
	}
	meta := map[string]string{
		"version":  fmt.Sprintf("%d", st.Version),
		"settings": string(settingsJSON),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	// Replace-all strategy: simple and safe at this scale. The seq
	// column persists sequence order, which is authoritative for
	// sibling ordering.
	for _, t := range []string{"items", "history"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for i, it := range st.Items {
		raw, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(seq, id, kind, parent_id, name, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			i, it.ID, string(it.Kind), it.ParentKey(), it.Name, string(raw), nowMs); err != nil {
			return err
		}
	}
	for i, h := range st.History {
		if _, err := tx.ExecContext(ctx, `INSERT INTO history(seq, kind, value, recorded_at_unixms) VALUES(?, ?, ?, ?)`,
			i, string(h.Kind), h.Value, h.RecordedAt.UTC().UnixMilli()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{}

	rows, err := db.QueryContext(ctx, `SELECT k, v FROM state_meta`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			_ = rows.Close()
			return nil, err
		}
		switch k {
		case "version":
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				out.Version = n
			}
		case "settings":
			if strings.TrimSpace(v) != "" {
				if err := json.Unmarshal([]byte(v), &out.Settings); err != nil {
					_ = rows.Close()
					return nil, err
				}
			}
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT json FROM items ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			_ = rows.Close()
			return nil, err
		}
		var it model.Item
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			_ = rows.Close()
			return nil, err
		}
		out.Items = append(out.Items, it)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT kind, value, recorded_at_unixms FROM history ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind, value string
		var ms int64
		if err := rows.Scan(&kind, &value, &ms); err != nil {
			return nil, err
		}
		out.History = append(out.History, model.HistoryEntry{
			Kind:       model.HistoryKind(kind),
			Value:      value,
			RecordedAt: time.UnixMilli(ms).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out.EnsureDefaults()
	return out, nil
}
