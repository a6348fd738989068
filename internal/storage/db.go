package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gumcheck/internal"
	"gumcheck/internal/sources"
)

const lastFiredKey = "schedule.last_fired"

// DB is the sqlite-backed session cache: automatic TableSources per slot
// plus scheduler bookkeeping, persisted across CLI invocations. It
// implements sources.Store.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS sources (
  slot TEXT PRIMARY KEY,
  tableJson TEXT NOT NULL,
  loadedAt TEXT,
  origin TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) GetSource(slot sources.Slot) (*internal.TableSource, error) {
	var tableJSON, origin string
	var loadedAt *string
	err := d.conn.QueryRow(`SELECT tableJson, loadedAt, origin FROM sources WHERE slot = ?`, string(slot)).
		Scan(&tableJSON, &loadedAt, &origin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	src := internal.TableSource{Origin: internal.Origin(origin)}
	if err := json.Unmarshal([]byte(tableJSON), &src.Table); err != nil {
		return nil, fmt.Errorf("corrupt cached table for slot %s: %w", slot, err)
	}
	if loadedAt != nil {
		parsed, err := time.Parse(time.RFC3339Nano, *loadedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt loadedAt for slot %s: %w", slot, err)
		}
		src.LoadedAt = &parsed
	}
	return &src, nil
}

// PutSource replaces the cached source in a single upsert, so concurrent
// readers see either the previous row or the complete new one.
func (d *DB) PutSource(slot sources.Slot, src internal.TableSource) error {
	tableJSON, err := json.Marshal(src.Table)
	if err != nil {
		return err
	}
	var loadedAt *string
	if src.LoadedAt != nil {
		formatted := src.LoadedAt.Format(time.RFC3339Nano)
		loadedAt = &formatted
	}

	_, err = d.conn.Exec(`
INSERT INTO sources (slot, tableJson, loadedAt, origin) VALUES (?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
  tableJson=excluded.tableJson,
  loadedAt=excluded.loadedAt,
  origin=excluded.origin,
  updatedAt=CURRENT_TIMESTAMP
`, string(slot), string(tableJSON), loadedAt, string(src.Origin))
	return err
}

func (d *DB) GetLastFired() (*time.Time, error) {
	value, err := d.GetMetadata(lastFiredKey)
	if err != nil || value == nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, fmt.Errorf("corrupt %s: %w", lastFiredKey, err)
	}
	return &parsed, nil
}

func (d *DB) SetLastFired(ts time.Time) error {
	return d.SetMetadata(lastFiredKey, ts.Format(time.RFC3339))
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
