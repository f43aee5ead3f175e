package scanner

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// Processor orchestrates classification of raw barcode input: normalize,
// detect triggers, resolve the category, and determine the next
// checkout/checkin action from the log tail. It holds no persistent state
// and never writes to the log; callers persist scan outcomes themselves.
type Processor struct {
	triggers *TriggerSet
	resolver *Resolver
	logger   *slog.Logger

	now        func() time.Time
	newEventID func() string
}

// NewProcessor creates a processor over the given trigger set and category
// resolver. A nil logger falls back to slog.Default; it is only used for
// diagnostics when a log store read fails.
func NewProcessor(triggers *TriggerSet, resolver *Resolver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		triggers:   triggers,
		resolver:   resolver,
		logger:     logger,
		now:        time.Now,
		newEventID: newEventID,
	}
}

// Normalize returns the cleaned form of a raw barcode: surrounding
// whitespace trimmed, uppercased. This form is used for all matching and is
// the value persisted to the log.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Process classifies one raw barcode. Trigger codes yield a trigger outcome
// and are never logged. Barcodes matching no category prefix, including
// empty or whitespace-only reads from scanner misfires, yield an unknown
// outcome so they cannot corrupt the toggle history of a real item. Item
// barcodes yield a scan outcome with the next action for that item; the
// store may be nil, in which case the action defaults to checkout.
func (p *Processor) Process(ctx context.Context, raw string, store types.LogStore) types.Outcome {
	cleaned := Normalize(raw)
	if cleaned == "" {
		return types.Outcome{Kind: types.KindUnknown}
	}

	if p.triggers.Has(cleaned) {
		return types.Outcome{Kind: types.KindTrigger}
	}

	cat, ok := p.resolver.Resolve(cleaned)
	if !ok {
		return types.Outcome{Kind: types.KindUnknown}
	}

	action := p.DetermineAction(ctx, cleaned, store)

	return types.Outcome{
		Kind:     types.KindScan,
		Barcode:  cleaned,
		Category: cat.Name,
		Action:   action,
		Metadata: map[string]any{
			types.MetaTimestamp:     p.now().Format(time.RFC3339),
			types.MetaOriginalInput: raw,
			types.MetaEventID:       p.newEventID(),
		},
	}
}

// DetermineAction computes the next action for a cleaned barcode by toggling
// the most recent logged action: no history means checkout, a checkout means
// checkin, a checkin means checkout.
//
// A nil store and a failing store both fall back to checkout. A wrong
// checkout is recoverable by rescanning, whereas surfacing a store error
// here would block all scanning, so the failure is only logged.
func (p *Processor) DetermineAction(ctx context.Context, barcode string, store types.LogStore) string {
	if store == nil {
		return types.ActionCheckout
	}

	last, err := store.Last(ctx, barcode)
	if err != nil {
		p.logger.Error("reading last scan, defaulting to checkout",
			"barcode", barcode, "error", err)
		return types.ActionCheckout
	}
	if last == nil {
		return types.ActionCheckout
	}
	if last.Action == types.ActionCheckout {
		return types.ActionCheckin
	}
	return types.ActionCheckout
}

// ResolveCategory returns the category name for a raw barcode, or the empty
// string when no prefix matches. Input is normalized before matching.
func (p *Processor) ResolveCategory(raw string) string {
	cat, ok := p.resolver.Resolve(Normalize(raw))
	if !ok {
		return ""
	}
	return cat.Name
}

// IsTrigger reports whether the raw barcode is a trigger code after
// normalization.
func (p *Processor) IsTrigger(raw string) bool {
	return p.triggers.Has(Normalize(raw))
}

// newEventID returns a UUID v7 so scan events carry a sortable client-side
// identifier before the store assigns a row id.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
