package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{name: "valid", category: Category{Name: "Ortopedi", Prefix: "ORTO"}},
		{name: "missing prefix", category: Category{Name: "Ortopedi"}, wantErr: ErrPrefixEmpty},
		{name: "blank prefix", category: Category{Name: "Ortopedi", Prefix: "  "}, wantErr: ErrPrefixEmpty},
		{name: "missing name", category: Category{Prefix: "ORTO"}, wantErr: ErrNameEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{name: "checkout", entry: Entry{Barcode: "KÄKX001A", Action: ActionCheckout}},
		{name: "checkin", entry: Entry{Barcode: "KÄKX001A", Action: ActionCheckin}},
		{name: "empty barcode", entry: Entry{Action: ActionCheckout}, wantErr: ErrBarcodeEmpty},
		{name: "unknown action", entry: Entry{Barcode: "KÄKX001A", Action: "borrowed"}, wantErr: ErrInvalidAction},
		{name: "empty action", entry: Entry{Barcode: "KÄKX001A"}, wantErr: ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidAction(t *testing.T) {
	assert.True(t, ValidAction(ActionCheckout))
	assert.True(t, ValidAction(ActionCheckin))
	assert.False(t, ValidAction(""))
	assert.False(t, ValidAction("CHECKOUT"))
}

func TestOutcomeEntry(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("scan converts", func(t *testing.T) {
		o := Outcome{
			Kind:     KindScan,
			Barcode:  "KÄKX001A",
			Category: "Käkkirurgi",
			Action:   ActionCheckout,
			Metadata: map[string]any{MetaOriginalInput: " käkx001a "},
		}
		entry, err := o.Entry(ts)
		require.NoError(t, err)
		assert.Equal(t, "KÄKX001A", entry.Barcode)
		assert.Equal(t, "Käkkirurgi", entry.Category)
		assert.Equal(t, ActionCheckout, entry.Action)
		assert.True(t, ts.Equal(entry.Timestamp))
		assert.Equal(t, " käkx001a ", entry.Metadata[MetaOriginalInput])
		assert.Zero(t, entry.ID, "id is assigned by the store")
	})

	t.Run("trigger does not convert", func(t *testing.T) {
		_, err := Outcome{Kind: KindTrigger}.Entry(ts)
		assert.ErrorIs(t, err, ErrNotScan)
	})

	t.Run("unknown does not convert", func(t *testing.T) {
		_, err := Outcome{Kind: KindUnknown}.Entry(ts)
		assert.ErrorIs(t, err, ErrNotScan)
	})
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	require.Len(t, categories, 8)

	seen := make(map[string]bool)
	for _, c := range categories {
		require.NoError(t, c.Validate())
		assert.False(t, seen[c.Prefix], "prefix %s duplicated", c.Prefix)
		seen[c.Prefix] = true
	}
	assert.True(t, seen["KÄKX"])
	assert.True(t, seen["ORTO"])
}
