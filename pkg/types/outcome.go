package types

import (
	"errors"
	"time"
)

// ErrNotScan is returned when a non-scan outcome is converted to a log entry.
var ErrNotScan = errors.New("outcome is not a scan")

// Outcome kinds. Every processed barcode resolves to exactly one of these.
const (
	KindTrigger = "trigger"
	KindScan    = "scan"
	KindUnknown = "unknown"
)

// Metadata keys attached to scan outcomes by the processor.
const (
	MetaTimestamp     = "timestamp"
	MetaOriginalInput = "original_input"
	MetaEventID       = "event_id"
)

// Outcome is the result of classifying one raw barcode. Kind is always set.
// Barcode, Category, Action, and Metadata are populated only for KindScan.
// An Outcome is a classification result, not a persisted record; callers
// persist scan outcomes to a log store themselves, so "classified" and
// "recorded" stay distinct.
type Outcome struct {
	Kind     string         `json:"kind"`
	Barcode  string         `json:"barcode,omitempty"`
	Category string         `json:"category,omitempty"`
	Action   string         `json:"action,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Entry converts a scan outcome into a log entry ready for appending.
// Returns ErrNotScan if the outcome is not of KindScan.
func (o Outcome) Entry(timestamp time.Time) (Entry, error) {
	if o.Kind != KindScan {
		return Entry{}, ErrNotScan
	}
	return Entry{
		Barcode:   o.Barcode,
		Category:  o.Category,
		Action:    o.Action,
		Timestamp: timestamp,
		Metadata:  o.Metadata,
	}, nil
}
