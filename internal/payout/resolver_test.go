package payout

import (
	"testing"
	"time"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func entry(supplierID uuid.UUID, product string, price string, from time.Time, to *time.Time) model.PriceEntry {
	final, _ := decimal.NewFromString(price)
	return model.PriceEntry{
		ID:            uuid.New(),
		SupplierID:    supplierID,
		ProductName:   product,
		Currency:      "INR",
		FinalPrice:    final,
		EffectiveFrom: from,
		EffectiveTo:   to,
	}
}

func TestResolvePriceWithinWindow(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(supplierID, "Widget", "100.00", date(2024, 1, 1), datePtr(2024, 6, 30)),
		entry(supplierID, "Widget", "120.00", date(2024, 7, 1), nil),
	}

	got := ResolvePrice(entries, supplierID, "Widget", date(2024, 3, 1))
	if got == nil {
		t.Fatalf("expected a match for a date inside the first window")
	}
	if got.FinalPrice.String() != "100" {
		t.Fatalf("expected price 100, got %s", got.FinalPrice)
	}

	got = ResolvePrice(entries, supplierID, "Widget", date(2024, 8, 1))
	if got == nil || got.FinalPrice.String() != "120" {
		t.Fatalf("expected open-ended entry at 120 for a later date, got %v", got)
	}
}

func TestResolvePriceNoWindowContainsDate(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(supplierID, "Widget", "100.00", date(2024, 1, 1), datePtr(2024, 1, 31)),
	}

	if got := ResolvePrice(entries, supplierID, "Widget", date(2023, 12, 31)); got != nil {
		t.Fatalf("expected nil before the window, got %v", got)
	}
	if got := ResolvePrice(entries, supplierID, "Widget", date(2024, 2, 1)); got != nil {
		t.Fatalf("expected nil after the window, got %v", got)
	}
}

func TestResolvePriceWindowBoundsInclusive(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(supplierID, "Widget", "100.00", date(2024, 1, 1), datePtr(2024, 1, 31)),
	}

	if got := ResolvePrice(entries, supplierID, "Widget", date(2024, 1, 1)); got == nil {
		t.Fatalf("expected match on effective_from itself")
	}
	if got := ResolvePrice(entries, supplierID, "Widget", date(2024, 1, 31)); got == nil {
		t.Fatalf("expected match on effective_to itself")
	}
}

func TestResolvePriceOverlapLatestEffectiveFromWins(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(supplierID, "Widget", "100.00", date(2024, 1, 1), nil),
		entry(supplierID, "Widget", "110.00", date(2024, 3, 1), nil),
		entry(supplierID, "Widget", "105.00", date(2024, 2, 1), nil),
	}

	got := ResolvePrice(entries, supplierID, "Widget", date(2024, 4, 1))
	if got == nil {
		t.Fatalf("expected a match among overlapping windows")
	}
	if got.FinalPrice.String() != "110" {
		t.Fatalf("expected latest effective_from to win (110), got %s", got.FinalPrice)
	}
}

func TestResolvePriceProductCaseInsensitive(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(supplierID, "WIDGET", "100.00", date(2024, 1, 1), nil),
	}

	if got := ResolvePrice(entries, supplierID, "widget", date(2024, 2, 1)); got == nil {
		t.Fatalf("expected case-insensitive product match")
	}
}

func TestResolvePriceSupplierExactMatch(t *testing.T) {
	supplierID := uuid.New()
	entries := []model.PriceEntry{
		entry(uuid.New(), "Widget", "100.00", date(2024, 1, 1), nil),
	}

	if got := ResolvePrice(entries, supplierID, "Widget", date(2024, 2, 1)); got != nil {
		t.Fatalf("expected no match for a different supplier, got %v", got)
	}
}
