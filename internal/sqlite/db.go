// Package sqlite implements the scan log store and item catalogue on SQLite.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schema is the full database schema. The scan_logs table is append-only;
// rows are never updated, only bulk-deleted by Clear.
const schema = `
CREATE TABLE IF NOT EXISTS scan_logs (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    barcode    TEXT NOT NULL,
    category   TEXT NOT NULL,
    action     TEXT NOT NULL CHECK (action IN ('checkout', 'checkin')),
    timestamp  TEXT NOT NULL,
    metadata   TEXT,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_scan_logs_timestamp ON scan_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_scan_logs_category  ON scan_logs(category);
CREATE INDEX IF NOT EXISTS idx_scan_logs_action    ON scan_logs(action);
CREATE INDEX IF NOT EXISTS idx_scan_logs_barcode   ON scan_logs(barcode);

CREATE TABLE IF NOT EXISTS item_names (
    barcode TEXT PRIMARY KEY,
    name    TEXT NOT NULL
);
`

// open opens a SQLite database and configures pragmas.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection serializes all writes, which gives "last entry
	// for barcode X" a consistent total order even with several scan
	// sources in one process.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
