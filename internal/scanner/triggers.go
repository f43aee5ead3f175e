// Package scanner implements the scan classification engine: trigger
// detection, category resolution by barcode prefix, and checkout/checkin
// state toggling against the scan log.
package scanner

import (
	"strings"
	"sync"
)

// TriggerSet recognizes control barcodes that activate the scanning UI
// rather than identifying inventory items. Membership is tested against
// cleaned (trimmed, uppercased) barcodes only.
type TriggerSet struct {
	mu    sync.RWMutex
	codes map[string]bool
	order []string
}

// NewTriggerSet creates a trigger set from the given codes, normalizing
// every entry to uppercase.
func NewTriggerSet(codes []string) *TriggerSet {
	ts := &TriggerSet{}
	ts.Update(codes)
	return ts
}

// Has reports whether the cleaned barcode exactly equals a trigger code.
// The caller is responsible for normalization.
func (ts *TriggerSet) Has(cleaned string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.codes[cleaned]
}

// Update replaces the trigger set. Entries are uppercased and deduplicated;
// blank entries are dropped. Original order is preserved for display.
func (ts *TriggerSet) Update(codes []string) {
	set := make(map[string]bool, len(codes))
	order := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || set[code] {
			continue
		}
		set[code] = true
		order = append(order, code)
	}

	ts.mu.Lock()
	ts.codes = set
	ts.order = order
	ts.mu.Unlock()
}

// List returns a copy of the trigger codes in display order.
func (ts *TriggerSet) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	out := make([]string, len(ts.order))
	copy(out, ts.order)
	return out
}
