package types

import (
	"errors"
	"time"
)

// Scan actions. An item alternates between these two states on successive
// scans; there are no other states.
const (
	ActionCheckout = "checkout"
	ActionCheckin  = "checkin"
)

// ErrInvalidAction is returned when an entry carries an action other than
// checkout or checkin.
var ErrInvalidAction = errors.New("invalid scan action")

// ValidAction reports whether action is one of the recognized scan actions.
func ValidAction(action string) bool {
	return action == ActionCheckout || action == ActionCheckin
}

// Entry is one immutable record of a classified, resolved scan event.
// ID is assigned by the log store on insert. Barcode is the cleaned
// (trimmed, uppercased) item identifier, never a trigger code. Category is
// the resolved category name at scan time, denormalized. Metadata is opaque
// auxiliary data (original raw input, event id) passed through unchanged.
type Entry struct {
	ID        int64          `json:"id"`
	Barcode   string         `json:"barcode"`
	Category  string         `json:"category"`
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	// Joined from the item catalogue (not always populated).
	ItemName string `json:"item_name,omitempty"`
}

// Validate checks that the entry can be persisted.
func (e Entry) Validate() error {
	if e.Barcode == "" {
		return ErrBarcodeEmpty
	}
	if !ValidAction(e.Action) {
		return ErrInvalidAction
	}
	return nil
}

// ErrBarcodeEmpty is returned when an entry has no barcode.
var ErrBarcodeEmpty = errors.New("barcode must not be empty")

// Filters narrows log store queries. Zero values mean "no constraint".
type Filters struct {
	Start    *time.Time
	End      *time.Time
	Category string
	Action   string
	Limit    int
}

// Stats aggregates the scan log for the dashboard.
type Stats struct {
	Total          int64            `json:"total"`
	Checkouts      int64            `json:"checkouts"`
	Checkins       int64            `json:"checkins"`
	CategoriesUsed int64            `json:"categories_used"`
	Today          int64            `json:"today"`
	PerCategory    map[string]int64 `json:"per_category"`
}

// Item is a catalogue mapping from a barcode to a display name.
type Item struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
}
