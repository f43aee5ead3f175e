package scanner

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// fallbackRunes is the minimum prefix length eligible for the partial-match
// fallback, and the number of leading characters compared there. Instrument
// barcodes often carry manufacturer suffixes or slightly truncated prefixes;
// comparing the first three characters tolerates those at the cost of
// collisions between prefixes sharing the same stem, acceptable for a prefix
// table of this size.
const fallbackRunes = 3

// Resolver maps barcode prefixes to categories. The table is keyed by
// uppercase prefix and read-mostly; mutations build a replacement table,
// persist it, and swap it in atomically so concurrent reads never observe a
// partial update.
//
// Candidate prefixes are matched in descending length order, so when several
// prefixes match the same barcode the most specific one wins. This is
// deliberate: matching in table iteration order would make the result depend
// on insertion order.
type Resolver struct {
	mu         sync.RWMutex
	categories map[string]types.Category
	prefixes   []string // sorted: longest first, then lexical

	store types.SettingsStore // nil disables persistence
}

// CategoryUpdate carries partial field updates for an existing category.
// Nil fields are left unchanged. The prefix key itself is immutable; remove
// and re-add to change it.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// NewResolver creates a resolver over the given categories. Keys are
// normalized to uppercase. The store, if non-nil, receives the full table
// after every mutation.
func NewResolver(categories map[string]types.Category, store types.SettingsStore) *Resolver {
	r := &Resolver{store: store}
	table := make(map[string]types.Category, len(categories))
	for prefix, cat := range categories {
		table[strings.ToUpper(prefix)] = cat
	}
	r.swap(table)
	return r
}

// Resolve returns the category for a cleaned barcode. The boolean is false
// when no prefix matches at either pass; an unmatched barcode is a
// legitimate "unknown item" outcome, not an error.
func (r *Resolver) Resolve(cleaned string) (types.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Exact-prefix pass, most specific prefix first.
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(cleaned, prefix) {
			return r.categories[prefix], true
		}
	}

	// Partial fallback: compare the first three characters of prefixes long
	// enough to have a meaningful stem.
	for _, prefix := range r.prefixes {
		runes := []rune(prefix)
		if len(runes) < fallbackRunes {
			continue
		}
		if strings.HasPrefix(cleaned, string(runes[:fallbackRunes])) {
			return r.categories[prefix], true
		}
	}

	return types.Category{}, false
}

// Get returns the category registered under the given prefix.
func (r *Resolver) Get(prefix string) (types.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categories[strings.ToUpper(prefix)]
	return cat, ok
}

// All returns every category, sorted by prefix.
func (r *Resolver) All() []types.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Category, 0, len(r.categories))
	for _, cat := range r.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// Prefixes returns the registered prefixes in match order (longest first).
func (r *Resolver) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// Add registers a category under its uppercased prefix, replacing any
// existing entry for that prefix, and persists the table.
func (r *Resolver) Add(cat types.Category) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	cat.Prefix = strings.ToUpper(strings.TrimSpace(cat.Prefix))

	r.mu.Lock()
	defer r.mu.Unlock()

	table := r.cloneLocked()
	table[cat.Prefix] = cat
	return r.replaceLocked(table)
}

// Update applies partial field updates to the category under prefix and
// persists the table. Returns types.ErrCategoryNotFound if the prefix is not
// registered.
func (r *Resolver) Update(prefix string, update CategoryUpdate) error {
	key := strings.ToUpper(prefix)

	r.mu.Lock()
	defer r.mu.Unlock()

	cat, ok := r.categories[key]
	if !ok {
		return fmt.Errorf("updating category %s: %w", key, types.ErrCategoryNotFound)
	}
	if update.Name != nil {
		cat.Name = *update.Name
	}
	if update.Description != nil {
		cat.Description = *update.Description
	}
	if update.Color != nil {
		cat.Color = *update.Color
	}
	if err := cat.Validate(); err != nil {
		return err
	}

	table := r.cloneLocked()
	table[key] = cat
	return r.replaceLocked(table)
}

// Remove deletes the category under prefix and persists the table. The
// boolean reports whether the prefix was registered.
func (r *Resolver) Remove(prefix string) (bool, error) {
	key := strings.ToUpper(prefix)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[key]; !ok {
		return false, nil
	}

	table := r.cloneLocked()
	delete(table, key)
	if err := r.replaceLocked(table); err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot returns a copy of the full prefix table.
func (r *Resolver) Snapshot() map[string]types.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cloneLocked()
}

func (r *Resolver) cloneLocked() map[string]types.Category {
	table := make(map[string]types.Category, len(r.categories))
	for prefix, cat := range r.categories {
		table[prefix] = cat
	}
	return table
}

// replaceLocked persists the replacement table, then swaps it in. Persisting
// first keeps the in-memory table consistent with the store when the write
// fails. Caller must hold the write lock.
func (r *Resolver) replaceLocked(table map[string]types.Category) error {
	if r.store != nil {
		if err := r.store.SaveCategories(table); err != nil {
			return fmt.Errorf("saving categories: %w", err)
		}
	}
	r.swapLocked(table)
	return nil
}

func (r *Resolver) swap(table map[string]types.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swapLocked(table)
}

func (r *Resolver) swapLocked(table map[string]types.Category) {
	prefixes := make([]string, 0, len(table))
	for prefix := range table {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		li, lj := len([]rune(prefixes[i])), len([]rune(prefixes[j]))
		if li != lj {
			return li > lj
		}
		return prefixes[i] < prefixes[j]
	})
	r.categories = table
	r.prefixes = prefixes
}
