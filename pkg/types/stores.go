package types

import "context"

// LogStore is the append-only scan log consumed by the scanning engine and
// the CLI. Implementations must give "last entry for barcode X" a consistent
// total order of writes; the SQLite backend does this by serializing appends
// on a single write connection. The engine itself only ever reads through
// Last; all writes come from callers persisting scan outcomes.
type LogStore interface {
	// Append inserts an entry and returns the store-assigned id.
	Append(ctx context.Context, entry *Entry) (int64, error)

	// Last returns the most recent entry whose barcode matches exactly,
	// or nil if the barcode has never been scanned.
	Last(ctx context.Context, barcode string) (*Entry, error)

	// Query returns entries matching the filters, newest first.
	Query(ctx context.Context, filters Filters) ([]Entry, error)

	// Aggregate computes dashboard statistics over the whole log.
	Aggregate(ctx context.Context) (*Stats, error)

	// Outstanding returns the latest entry per barcode for every item
	// whose most recent action is a checkout, newest first.
	Outstanding(ctx context.Context) ([]Entry, error)

	// Clear removes every entry from the log.
	Clear(ctx context.Context) error
}

// SettingsStore persists the category prefix table and the trigger code set.
// Categories are keyed by uppercase prefix. Save operations replace the
// whole collection; callers mutate an in-memory copy and write it back.
type SettingsStore interface {
	LoadCategories() (map[string]Category, error)
	SaveCategories(map[string]Category) error
	LoadTriggers() ([]string, error)
	SaveTriggers([]string) error
}
