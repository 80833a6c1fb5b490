package payout

import (
	"strings"
	"time"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
)

// day truncates a timestamp to day granularity in UTC. All validity-window
// comparisons happen at this granularity.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolvePrice finds the single price entry applicable to a supplier/product
// on the reference date: supplier matched exactly, product case-insensitively,
// and effective_from <= ref <= effective_to (open-ended when effective_to is
// nil). When validity windows overlap, the entry with the latest
// effective_from wins.
//
// A nil result is the normal "missing price" condition, not an error; the
// calculator reports it as data.
func ResolvePrice(entries []model.PriceEntry, supplierID uuid.UUID, productName string, refDate time.Time) *model.PriceEntry {
	ref := day(refDate)

	var best *model.PriceEntry
	for i := range entries {
		e := &entries[i]
		if e.SupplierID != supplierID || !strings.EqualFold(e.ProductName, productName) {
			continue
		}
		from := day(e.EffectiveFrom)
		if from.After(ref) {
			continue
		}
		if e.EffectiveTo != nil && day(*e.EffectiveTo).Before(ref) {
			continue
		}
		if best == nil || from.After(day(best.EffectiveFrom)) {
			best = e
		}
	}

	return best
}
