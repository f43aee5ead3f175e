package scanner

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// memLog is an in-memory log store for processor tests. Append keeps only
// the latest entry per barcode, which is all Last needs.
type memLog struct {
	last    map[string]*types.Entry
	lastErr error
	nextID  int64
}

func newMemLog() *memLog {
	return &memLog{last: make(map[string]*types.Entry)}
}

func (m *memLog) Append(_ context.Context, entry *types.Entry) (int64, error) {
	m.nextID++
	entry.ID = m.nextID
	e := *entry
	m.last[entry.Barcode] = &e
	return entry.ID, nil
}

func (m *memLog) Last(_ context.Context, barcode string) (*types.Entry, error) {
	if m.lastErr != nil {
		return nil, m.lastErr
	}
	return m.last[barcode], nil
}

func (m *memLog) Query(context.Context, types.Filters) ([]types.Entry, error) { return nil, nil }
func (m *memLog) Aggregate(context.Context) (*types.Stats, error)             { return nil, nil }
func (m *memLog) Outstanding(context.Context) ([]types.Entry, error)          { return nil, nil }
func (m *memLog) Clear(context.Context) error                                 { return nil }

func newTestProcessor() *Processor {
	triggers := NewTriggerSet(types.DefaultTriggers())
	resolver := NewResolver(defaultTable(), nil)
	return NewProcessor(triggers, resolver, slog.Default())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "KÄKX001A", Normalize("  käkx001a \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		raw      string
		wantKind string
	}{
		{
			name:     "trigger code with noise is a trigger",
			raw:      " scan_start ",
			wantKind: types.KindTrigger,
		},
		{
			name:     "known prefix is a scan",
			raw:      "KÄKX001A",
			wantKind: types.KindScan,
		},
		{
			name:     "no matching prefix is unknown",
			raw:      "ZZZZ999",
			wantKind: types.KindUnknown,
		},
		{
			name:     "empty input is unknown",
			raw:      "",
			wantKind: types.KindUnknown,
		},
		{
			name:     "whitespace-only input is unknown",
			raw:      "   \t ",
			wantKind: types.KindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcessor()
			outcome := p.Process(ctx, tt.raw, newMemLog())
			assert.Equal(t, tt.wantKind, outcome.Kind)
		})
	}
}

func TestProcessor_ProcessScanOutcome(t *testing.T) {
	ctx := context.Background()
	p := newTestProcessor()

	outcome := p.Process(ctx, " käkx001a ", newMemLog())

	require.Equal(t, types.KindScan, outcome.Kind)
	assert.Equal(t, "KÄKX001A", outcome.Barcode, "persisted barcode is the normalized form")
	assert.Equal(t, "Käkkirurgi", outcome.Category)
	assert.Equal(t, types.ActionCheckout, outcome.Action, "first sighting is a checkout")

	assert.Equal(t, " käkx001a ", outcome.Metadata[types.MetaOriginalInput])
	assert.NotEmpty(t, outcome.Metadata[types.MetaEventID])

	ts, ok := outcome.Metadata[types.MetaTimestamp].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestProcessor_ToggleAlternation(t *testing.T) {
	ctx := context.Background()
	p := newTestProcessor()
	store := newMemLog()

	// checkout, checkin, checkout, ... for any length of history.
	want := []string{
		types.ActionCheckout, types.ActionCheckin,
		types.ActionCheckout, types.ActionCheckin,
		types.ActionCheckout,
	}
	for i, wantAction := range want {
		outcome := p.Process(ctx, "KÄKX001A", store)
		require.Equal(t, types.KindScan, outcome.Kind)
		assert.Equal(t, wantAction, outcome.Action, "scan %d", i+1)

		entry, err := outcome.Entry(time.Now())
		require.NoError(t, err)
		_, err = store.Append(ctx, &entry)
		require.NoError(t, err)
	}
}

func TestProcessor_TriggerCodesAreNeverResolved(t *testing.T) {
	// A trigger wins even when a category prefix would match it.
	triggers := NewTriggerSet([]string{"ORTO999"})
	resolver := NewResolver(defaultTable(), nil)
	p := NewProcessor(triggers, resolver, slog.Default())

	outcome := p.Process(context.Background(), "ORTO999", newMemLog())
	assert.Equal(t, types.KindTrigger, outcome.Kind)
}

func TestProcessor_DetermineAction(t *testing.T) {
	ctx := context.Background()
	p := newTestProcessor()

	t.Run("nil store defaults to checkout", func(t *testing.T) {
		assert.Equal(t, types.ActionCheckout, p.DetermineAction(ctx, "KÄKX001A", nil))
	})

	t.Run("no history is a checkout", func(t *testing.T) {
		assert.Equal(t, types.ActionCheckout, p.DetermineAction(ctx, "KÄKX001A", newMemLog()))
	})

	t.Run("last checkout toggles to checkin", func(t *testing.T) {
		store := newMemLog()
		_, err := store.Append(ctx, &types.Entry{
			Barcode: "KÄKX001A", Category: "Käkkirurgi",
			Action: types.ActionCheckout, Timestamp: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, types.ActionCheckin, p.DetermineAction(ctx, "KÄKX001A", store))
	})

	t.Run("last checkin toggles to checkout", func(t *testing.T) {
		store := newMemLog()
		_, err := store.Append(ctx, &types.Entry{
			Barcode: "KÄKX001A", Category: "Käkkirurgi",
			Action: types.ActionCheckin, Timestamp: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, types.ActionCheckout, p.DetermineAction(ctx, "KÄKX001A", store))
	})

	t.Run("history is per exact barcode", func(t *testing.T) {
		store := newMemLog()
		_, err := store.Append(ctx, &types.Entry{
			Barcode: "KÄKX001A", Category: "Käkkirurgi",
			Action: types.ActionCheckout, Timestamp: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, types.ActionCheckout, p.DetermineAction(ctx, "KÄKX001B", store))
	})

	t.Run("store failure falls back to checkout", func(t *testing.T) {
		store := newMemLog()
		store.lastErr = errors.New("database is locked")
		assert.Equal(t, types.ActionCheckout, p.DetermineAction(ctx, "KÄKX001A", store))
	})
}

func TestProcessor_StoreFailureStillYieldsScan(t *testing.T) {
	store := newMemLog()
	store.lastErr = errors.New("disk I/O error")
	p := newTestProcessor()

	outcome := p.Process(context.Background(), "KÄKX001A", store)

	require.Equal(t, types.KindScan, outcome.Kind, "a store hiccup must not block scanning")
	assert.Equal(t, types.ActionCheckout, outcome.Action)
}

func TestProcessor_ResolveCategory(t *testing.T) {
	p := newTestProcessor()

	assert.Equal(t, "Käkkirurgi", p.ResolveCategory(" käkx001a "))
	assert.Equal(t, "", p.ResolveCategory("ZZZZ999"))
}

func TestProcessor_IsTrigger(t *testing.T) {
	p := newTestProcessor()

	assert.True(t, p.IsTrigger(" scan_start "))
	assert.False(t, p.IsTrigger("KÄKX001A"))
}
