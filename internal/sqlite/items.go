package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// ItemName returns the catalogued display name for a barcode, or the empty
// string if the barcode is not catalogued.
func (s *Store) ItemName(ctx context.Context, barcode string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM item_names WHERE barcode = ?`, barcode,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting item name for %s: %w", barcode, err)
	}
	return name, nil
}

// SetItemName catalogues a display name for a barcode, replacing any
// existing name.
func (s *Store) SetItemName(ctx context.Context, barcode, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO item_names (barcode, name) VALUES (?, ?)`,
		barcode, name,
	)
	if err != nil {
		return fmt.Errorf("setting item name for %s: %w", barcode, err)
	}
	return nil
}

// Items returns the catalogue ordered by barcode. A limit of 0 means no
// limit.
func (s *Store) Items(ctx context.Context, limit int) ([]types.Item, error) {
	query := `SELECT barcode, name FROM item_names ORDER BY barcode`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.Barcode, &item.Name); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ImportItems catalogues a batch of items in one transaction, replacing
// existing names, and returns the number imported.
func (s *Store) ImportItems(ctx context.Context, items []types.Item) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, item := range items {
		if item.Barcode == "" || item.Name == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO item_names (barcode, name) VALUES (?, ?)`,
			item.Barcode, item.Name,
		)
		if err != nil {
			return 0, fmt.Errorf("importing item %s: %w", item.Barcode, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}
