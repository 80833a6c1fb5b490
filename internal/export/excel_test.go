package export

import (
	"testing"

	"vendorpay/backend/internal/payout"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestWorkbookSheets(t *testing.T) {
	bundle := payout.Bundle{
		SupplierSummary: []payout.SupplierPayoutRow{
			{
				SupplierID:      uuid.New(),
				SupplierName:    "Acme",
				Currency:        "INR",
				TotalOrders:     4,
				DeliveredOrders: 3,
				RTSOrders:       1,
				TotalAmount:     decimal.NewFromInt(300),
			},
		},
		Exceptions: []payout.OrderException{
			{RowIndex: 1, Type: payout.ExceptionMissingAWB, Description: "order has no AWB number", OrderID: uuid.New()},
		},
	}

	f, err := Workbook(bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	want := map[string]bool{
		"Supplier Summary":   true,
		"Payout Sheet":       true,
		"Cancelled Orders":   true,
		"Reconciliation Log": true,
		"Exceptions":         true,
		"Line Details":       true,
	}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("expected %d sheets, got %d: %v", len(want), len(sheets), sheets)
	}
	for _, name := range sheets {
		if !want[name] {
			t.Fatalf("unexpected sheet %q", name)
		}
	}

	name, err := f.GetCellValue("Supplier Summary", "A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Acme" {
		t.Fatalf("expected supplier name in A2, got %q", name)
	}

	amount, err := f.GetCellValue("Supplier Summary", "F2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != "300.00" {
		t.Fatalf("expected total amount 300.00, got %q", amount)
	}

	exType, err := f.GetCellValue("Exceptions", "B2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exType != "missing_awb" {
		t.Fatalf("expected missing_awb exception type, got %q", exType)
	}
}
