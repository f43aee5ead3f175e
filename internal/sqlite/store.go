package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// timeFormat is RFC 3339 UTC with a fixed-width fractional second, so stored
// timestamps compare chronologically as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite-backed scan log and item catalogue.
type Store struct {
	db *sql.DB
}

var _ types.LogStore = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts a scan entry and returns the store-assigned id.
func (s *Store) Append(ctx context.Context, entry *types.Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	var metadata sql.NullString
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return 0, fmt.Errorf("encoding metadata: %w", err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_logs (barcode, category, action, timestamp, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.Barcode, entry.Category, entry.Action, ts.UTC().Format(timeFormat), metadata,
	)
	if err != nil {
		return 0, fmt.Errorf("appending scan log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	entry.ID = id
	return id, nil
}

// Last returns the most recent entry for the exact barcode, or nil if the
// barcode has never been scanned.
func (s *Store) Last(ctx context.Context, barcode string) (*types.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.barcode, s.category, s.action, s.timestamp, s.metadata, n.name
		 FROM scan_logs s
		 LEFT JOIN item_names n ON n.barcode = s.barcode
		 WHERE s.barcode = ?
		 ORDER BY s.timestamp DESC, s.id DESC
		 LIMIT 1`, barcode,
	)

	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting last scan for %s: %w", barcode, err)
	}
	return entry, nil
}

// Query returns entries matching the filters, newest first.
func (s *Store) Query(ctx context.Context, filters types.Filters) ([]types.Entry, error) {
	query := `SELECT s.id, s.barcode, s.category, s.action, s.timestamp, s.metadata, n.name
	          FROM scan_logs s
	          LEFT JOIN item_names n ON n.barcode = s.barcode
	          WHERE 1=1`
	var args []any

	if filters.Start != nil {
		query += ` AND s.timestamp >= ?`
		args = append(args, filters.Start.UTC().Format(timeFormat))
	}
	if filters.End != nil {
		query += ` AND s.timestamp <= ?`
		args = append(args, filters.End.UTC().Format(timeFormat))
	}
	if filters.Category != "" {
		query += ` AND s.category = ?`
		args = append(args, filters.Category)
	}
	if filters.Action != "" {
		if !types.ValidAction(filters.Action) {
			return nil, types.ErrInvalidAction
		}
		query += ` AND s.action = ?`
		args = append(args, filters.Action)
	}

	query += ` ORDER BY s.timestamp DESC, s.id DESC`

	if filters.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filters.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scan logs: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Outstanding returns the latest entry per barcode for items whose most
// recent action is a checkout, newest first.
func (s *Store) Outstanding(ctx context.Context) ([]types.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.barcode, s.category, s.action, s.timestamp, s.metadata, n.name
		 FROM scan_logs s
		 JOIN (SELECT barcode, MAX(id) AS last_id FROM scan_logs GROUP BY barcode) latest
		   ON s.id = latest.last_id
		 LEFT JOIN item_names n ON n.barcode = s.barcode
		 WHERE s.action = 'checkout'
		 ORDER BY s.timestamp DESC, s.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying outstanding items: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Aggregate computes dashboard statistics over the whole log.
func (s *Store) Aggregate(ctx context.Context) (*types.Stats, error) {
	stats := &types.Stats{PerCategory: make(map[string]int64)}

	counts := []struct {
		dest  *int64
		query string
	}{
		{&stats.Total, `SELECT COUNT(*) FROM scan_logs`},
		{&stats.Checkouts, `SELECT COUNT(*) FROM scan_logs WHERE action = 'checkout'`},
		{&stats.Checkins, `SELECT COUNT(*) FROM scan_logs WHERE action = 'checkin'`},
		{&stats.CategoriesUsed, `SELECT COUNT(DISTINCT category) FROM scan_logs`},
		{&stats.Today, `SELECT COUNT(*) FROM scan_logs WHERE date(timestamp) = date('now')`},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("aggregating scan logs: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM scan_logs GROUP BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregating categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		stats.PerCategory[category] = count
	}
	return stats, rows.Err()
}

// Clear removes every entry from the scan log. The item catalogue is kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scan_logs`); err != nil {
		return fmt.Errorf("clearing scan logs: %w", err)
	}
	return nil
}

// scanEntry reads one entry from a row scan function.
func scanEntry(scan func(dest ...any) error) (*types.Entry, error) {
	var e types.Entry
	var ts string
	var metadata, itemName sql.NullString

	if err := scan(&e.ID, &e.Barcode, &e.Category, &e.Action, &ts, &metadata, &itemName); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	e.Timestamp = parsed

	if metadata.Valid {
		if err := json.Unmarshal([]byte(metadata.String), &e.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	e.ItemName = itemName.String
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]types.Entry, error) {
	var entries []types.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}
