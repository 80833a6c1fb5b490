package notification

import (
	"strings"
	"testing"
	"time"

	"vendorpay/backend/internal/payout"

	"github.com/shopspring/decimal"
)

func TestFormatLongDateOrdinals(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "1st March 2024"},
		{2, "2nd March 2024"},
		{3, "3rd March 2024"},
		{4, "4th March 2024"},
		{11, "11th March 2024"},
		{12, "12th March 2024"},
		{13, "13th March 2024"},
		{21, "21st March 2024"},
		{22, "22nd March 2024"},
		{23, "23rd March 2024"},
		{31, "31st March 2024"},
	}

	for _, tc := range tests {
		got := FormatLongDate(time.Date(2024, time.March, tc.day, 0, 0, 0, 0, time.UTC))
		if got != tc.want {
			t.Fatalf("day %d: expected %q, got %q", tc.day, tc.want, got)
		}
	}
}

func TestNewReferenceShape(t *testing.T) {
	ref := NewReference()
	if !strings.HasPrefix(ref, "UTR") {
		t.Fatalf("expected UTR prefix, got %q", ref)
	}
	if len(ref) != 19 {
		t.Fatalf("expected 19-char reference, got %d (%q)", len(ref), ref)
	}
	if ref == NewReference() {
		t.Fatalf("expected unique references per call")
	}
}

func TestFromSummaryCounts(t *testing.T) {
	row := payout.SupplierSummary{
		SupplierName: "Acme",
		Currency:     "INR",
		OrderCount:   3,
		TotalAmount:  decimal.NewFromInt(450),
		Calculations: []payout.Calculation{
			{ProductName: "Widget", Qty: 2},
			{ProductName: "widget", Qty: 1}, // same product, different casing
			{ProductName: "Bolt", Qty: 4},
		},
	}

	notice := FromSummary(row, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

	if notice.UnitCount != 7 {
		t.Fatalf("expected 7 units, got %d", notice.UnitCount)
	}
	if notice.ProductCount != 2 {
		t.Fatalf("expected 2 distinct products, got %d", notice.ProductCount)
	}

	body := notice.Body()
	for _, want := range []string{
		"Dear Acme",
		"INR 450.00",
		"1st March 2024 to 31st March 2024",
		"Orders paid: 3",
		"Units shipped: 7",
		"Distinct products: 2",
		notice.Reference,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}
