package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepo persists the save as a single-row JSON document in a
// SQLite database.
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and
// applies migrations.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open sqlite: mkdir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A save store sees one writer; WAL keeps the autosave tick from
	// blocking a concurrent stats read.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open sqlite: pragma: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Save(ctx context.Context, snap Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save: marshal: %w", err)
	}
	savedAt := snap.SavedAt.UTC().Format(time.RFC3339Nano)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO saves (id, document, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, saved_at = excluded.saved_at;
	`, string(doc), savedAt)
	if err != nil {
		return fmt.Errorf("save: upsert: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Load(ctx context.Context) (Snapshot, bool, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM saves WHERE id = 1;`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load: query: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("load: unmarshal: %w", err)
	}
	return snap, true, nil
}

func (r *SQLiteRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE id = 1;`); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
