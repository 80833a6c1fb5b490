package payout

import (
	"testing"
	"time"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func reportOrder(supplierID uuid.UUID, awb string, status model.OrderStatus, delivered *time.Time, lineAmount string) model.Order {
	return model.Order{
		ID:            uuid.New(),
		AWB:           awb,
		SupplierID:    supplierID,
		ProductName:   "Widget",
		Qty:           1,
		Currency:      "INR",
		Status:        status,
		DeliveredDate: delivered,
		LineAmount:    lineAmount,
	}
}

func TestGenerateReportsPeriodFilter(t *testing.T) {
	acme := supplier("Acme")
	may := reportOrder(acme.ID, "MAY1", model.StatusDelivered, datePtr(2024, 5, 1), "100")
	july := reportOrder(acme.ID, "JUL1", model.StatusDelivered, datePtr(2024, 7, 1), "200")
	undated := reportOrder(acme.ID, "NODATE", model.StatusDelivered, nil, "50")

	from := date(2024, 6, 1)
	bundle := GenerateReports([]model.Order{may, july, undated}, []model.Supplier{acme}, nil, Filters{PeriodFrom: &from})

	if len(bundle.PayoutSheet) != 1 || bundle.PayoutSheet[0].AWB != "JUL1" {
		t.Fatalf("expected only JUL1 on the payout sheet, got %+v", bundle.PayoutSheet)
	}
	if len(bundle.LineDetails) != 1 {
		t.Fatalf("expected undated and early orders dropped from line details, got %d", len(bundle.LineDetails))
	}
}

func TestGenerateReportsCancelledIgnoresFilters(t *testing.T) {
	acme := supplier("Acme")
	cancelled := reportOrder(acme.ID, "C1", model.StatusCancelled, datePtr(2024, 5, 1), "")
	cancelled.ChannelOrderDate = datePtr(2024, 4, 20)
	delivered := reportOrder(acme.ID, "D1", model.StatusDelivered, datePtr(2024, 7, 1), "100")

	from := date(2024, 6, 1)
	bundle := GenerateReports([]model.Order{cancelled, delivered}, []model.Supplier{acme}, nil, Filters{PeriodFrom: &from})

	if len(bundle.CancelledOrders) != 1 {
		t.Fatalf("expected cancelled order kept despite the period filter, got %d", len(bundle.CancelledOrders))
	}
	row := bundle.CancelledOrders[0]
	if row.SupplierName != "Unknown" {
		t.Fatalf("expected supplier placeholder to stay Unknown, got %q", row.SupplierName)
	}
	if row.ChannelOrderDate != "2024-04-20" {
		t.Fatalf("expected channel order date carried, got %q", row.ChannelOrderDate)
	}
}

func TestGenerateReportsUnknownSupplierFilterIsNoOp(t *testing.T) {
	acme := supplier("Acme")
	o := reportOrder(acme.ID, "A1", model.StatusDelivered, datePtr(2024, 5, 1), "100")

	bundle := GenerateReports([]model.Order{o}, []model.Supplier{acme}, nil, Filters{Supplier: "No Such Vendor"})

	if len(bundle.PayoutSheet) != 1 {
		t.Fatalf("expected unknown supplier filter to pass through silently, got %d rows", len(bundle.PayoutSheet))
	}
}

func TestGenerateReportsSupplierFilter(t *testing.T) {
	acme := supplier("Acme")
	zen := supplier("Zen Traders")
	a := reportOrder(acme.ID, "A1", model.StatusDelivered, datePtr(2024, 5, 1), "100")
	z := reportOrder(zen.ID, "Z1", model.StatusDelivered, datePtr(2024, 5, 2), "200")

	bundle := GenerateReports([]model.Order{a, z}, []model.Supplier{acme, zen}, nil, Filters{Supplier: "Acme"})

	if len(bundle.PayoutSheet) != 1 || bundle.PayoutSheet[0].AWB != "A1" {
		t.Fatalf("expected only Acme orders, got %+v", bundle.PayoutSheet)
	}
}

func TestGenerateReportsSupplierSummaryCountsAndSort(t *testing.T) {
	acme := supplier("Acme")
	zen := supplier("Zen Traders")
	orders := []model.Order{
		reportOrder(acme.ID, "A1", model.StatusDelivered, datePtr(2024, 5, 1), "100.50"),
		reportOrder(acme.ID, "A2", model.StatusRTO, datePtr(2024, 5, 2), "80"),
		reportOrder(acme.ID, "A3", model.StatusDelivered, datePtr(2024, 5, 3), "not-a-number"),
		reportOrder(zen.ID, "Z1", model.StatusDelivered, datePtr(2024, 5, 4), "500"),
	}

	bundle := GenerateReports(orders, []model.Supplier{acme, zen}, nil, Filters{})

	if len(bundle.SupplierSummary) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(bundle.SupplierSummary))
	}

	// Sorted descending by total amount: Zen (500) first.
	first, second := bundle.SupplierSummary[0], bundle.SupplierSummary[1]
	if first.SupplierName != "Zen Traders" {
		t.Fatalf("expected Zen Traders first by amount, got %q", first.SupplierName)
	}
	if second.TotalOrders != 3 || second.DeliveredOrders != 2 || second.RTSOrders != 1 {
		t.Fatalf("unexpected Acme counts: %+v", second)
	}
	// Unparseable persisted amount contributes zero, not an error.
	if second.TotalAmount.String() != "100.5" {
		t.Fatalf("expected Acme total 100.5, got %s", second.TotalAmount)
	}
}

func TestGenerateReportsMinAmountFloor(t *testing.T) {
	acme := supplier("Acme")
	zen := supplier("Zen Traders")
	orders := []model.Order{
		reportOrder(acme.ID, "A1", model.StatusDelivered, datePtr(2024, 5, 1), "100"),
		reportOrder(zen.ID, "Z1", model.StatusDelivered, datePtr(2024, 5, 2), "500"),
	}

	min := decimal.NewFromInt(200)
	bundle := GenerateReports(orders, []model.Supplier{acme, zen}, nil, Filters{MinAmount: &min})

	if len(bundle.SupplierSummary) != 1 || bundle.SupplierSummary[0].SupplierName != "Zen Traders" {
		t.Fatalf("expected only rows at or above the floor, got %+v", bundle.SupplierSummary)
	}
}

func TestGenerateReportsExceptions(t *testing.T) {
	acme := supplier("Acme")

	bad := reportOrder(acme.ID, "  ", model.StatusDelivered, datePtr(2024, 5, 1), "100")
	bad.ProductName = ""
	bad.Qty = 0
	ok := reportOrder(acme.ID, "A2", model.StatusDelivered, datePtr(2024, 5, 2), "100")

	bundle := GenerateReports([]model.Order{bad, ok}, []model.Supplier{acme}, nil, Filters{})

	if len(bundle.Exceptions) != 3 {
		t.Fatalf("expected 3 exception records for one triply-bad order, got %d", len(bundle.Exceptions))
	}
	for _, ex := range bundle.Exceptions {
		if ex.RowIndex != 1 {
			t.Fatalf("expected 1-based row index 1, got %d", ex.RowIndex)
		}
		if ex.OrderID != bad.ID {
			t.Fatalf("exception attributed to the wrong order")
		}
	}

	types := map[string]bool{}
	for _, ex := range bundle.Exceptions {
		types[ex.Type] = true
	}
	for _, want := range []string{ExceptionMissingAWB, ExceptionMissingProduct, ExceptionInvalidQuantity} {
		if !types[want] {
			t.Fatalf("missing exception type %s in %v", want, types)
		}
	}
}

func TestGenerateReportsLineDetailBasisDate(t *testing.T) {
	acme := supplier("Acme")

	both := reportOrder(acme.ID, "A1", model.StatusDelivered, datePtr(2024, 5, 1), "100")
	both.OrderDate = datePtr(2024, 4, 25)
	orderOnly := reportOrder(acme.ID, "A2", model.StatusOther, nil, "")
	orderOnly.OrderDate = datePtr(2024, 4, 26)
	neither := reportOrder(acme.ID, "A3", model.StatusOther, nil, "")

	bundle := GenerateReports([]model.Order{both, orderOnly, neither}, []model.Supplier{acme}, nil, Filters{})

	want := map[string]string{"A1": "2024-05-01", "A2": "2024-04-26", "A3": ""}
	for _, row := range bundle.LineDetails {
		if row.BasisDate != want[row.AWB] {
			t.Fatalf("%s: expected basis date %q, got %q", row.AWB, want[row.AWB], row.BasisDate)
		}
		if row.SupplierName != "Acme" {
			t.Fatalf("expected supplier name joined on line details, got %q", row.SupplierName)
		}
	}
}

func TestGenerateReportsReconciliationLogPassthrough(t *testing.T) {
	acme := supplier("Acme")
	logs := []model.ReconciliationLog{
		{ID: uuid.New(), AWB: "A1", PreviousStatus: model.StatusDelivered, NewStatus: model.StatusRTO},
	}

	from := date(2099, 1, 1) // filter that would drop every order
	bundle := GenerateReports(nil, []model.Supplier{acme}, logs, Filters{PeriodFrom: &from})

	if len(bundle.ReconciliationLog) != 1 {
		t.Fatalf("expected log passthrough unaffected by filters, got %d", len(bundle.ReconciliationLog))
	}
}
