package payout

import (
	"reflect"
	"testing"
	"time"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func supplier(name string) model.Supplier {
	return model.Supplier{ID: uuid.New(), Name: name}
}

func deliveredOrder(supplierID uuid.UUID, awb, product string, qty int, delivered time.Time) model.Order {
	return model.Order{
		ID:            uuid.New(),
		AWB:           awb,
		SupplierID:    supplierID,
		ProductName:   product,
		Qty:           qty,
		Currency:      "INR",
		Status:        model.StatusDelivered,
		DeliveredDate: &delivered,
	}
}

func TestCalculatePayoutsSingleDeliveredOrder(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
	}
	orders := []model.Order{
		deliveredOrder(acme.ID, "A1", "Widget", 3, date(2024, 3, 1)),
	}

	result := CalculatePayouts(orders, entries, []model.Supplier{acme}, BasisDeliveredDate)

	if len(result.Calculations) != 1 {
		t.Fatalf("expected 1 calculation, got %d", len(result.Calculations))
	}
	calc := result.Calculations[0]
	if calc.LineAmount.String() != "300" {
		t.Fatalf("expected line amount 300, got %s", calc.LineAmount)
	}
	if calc.BasisDate != "2024-03-01" {
		t.Fatalf("expected basis date 2024-03-01, got %q", calc.BasisDate)
	}

	if len(result.SupplierSummary) != 1 {
		t.Fatalf("expected 1 summary row, got %d", len(result.SupplierSummary))
	}
	row := result.SupplierSummary[0]
	if row.SupplierName != "Acme" || row.Currency != "INR" {
		t.Fatalf("unexpected summary key: %s/%s", row.SupplierName, row.Currency)
	}
	if row.OrderCount != 1 || row.TotalAmount.String() != "300" {
		t.Fatalf("expected count 1 / total 300, got %d / %s", row.OrderCount, row.TotalAmount)
	}

	if len(result.MissingPrices) != 0 {
		t.Fatalf("expected no missing prices, got %v", result.MissingPrices)
	}
}

func TestCalculatePayoutsExcludesNonPayableStatuses(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
	}

	for _, status := range []model.OrderStatus{
		model.StatusRTO, model.StatusRTS, model.StatusCancelled, model.StatusReturned, model.StatusOther,
	} {
		order := deliveredOrder(acme.ID, "A1", "Widget", 3, date(2024, 3, 1))
		order.Status = status

		result := CalculatePayouts([]model.Order{order}, entries, []model.Supplier{acme}, BasisDeliveredDate)

		if len(result.Calculations) != 0 || len(result.SupplierSummary) != 0 || len(result.MissingPrices) != 0 {
			t.Fatalf("status %s: expected order excluded entirely, got %+v", status, result)
		}
	}
}

func TestCalculatePayoutsMissingBasisDateSkipsSilently(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
	}
	order := deliveredOrder(acme.ID, "A1", "Widget", 1, date(2024, 3, 1))
	order.DeliveredDate = nil

	result := CalculatePayouts([]model.Order{order}, entries, []model.Supplier{acme}, BasisDeliveredDate)

	// Not yet ready for payout: neither a calculation nor a missing-price entry.
	if len(result.Calculations) != 0 || len(result.MissingPrices) != 0 {
		t.Fatalf("expected silent skip, got %+v", result)
	}
}

func TestCalculatePayoutsOrderDateBasis(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), datePtr(2024, 2, 29)),
		entry(acme.ID, "Widget", "150.00", date(2024, 3, 1), nil),
	}
	order := deliveredOrder(acme.ID, "A1", "Widget", 1, date(2024, 3, 10))
	order.OrderDate = datePtr(2024, 2, 10)

	delivered := CalculatePayouts([]model.Order{order}, entries, []model.Supplier{acme}, BasisDeliveredDate)
	if delivered.Calculations[0].UnitPrice.String() != "150" {
		t.Fatalf("delivered basis: expected 150, got %s", delivered.Calculations[0].UnitPrice)
	}

	ordered := CalculatePayouts([]model.Order{order}, entries, []model.Supplier{acme}, BasisOrderDate)
	if ordered.Calculations[0].UnitPrice.String() != "100" {
		t.Fatalf("order-date basis: expected 100, got %s", ordered.Calculations[0].UnitPrice)
	}
}

func TestCalculatePayoutsMissingPriceDeduplicated(t *testing.T) {
	acme := supplier("Acme")
	orders := make([]model.Order, 0, 5)
	for i := 0; i < 5; i++ {
		orders = append(orders, deliveredOrder(acme.ID, "A1", "Gadget", 1, date(2024, 3, 1)))
	}

	result := CalculatePayouts(orders, nil, []model.Supplier{acme}, BasisDeliveredDate)

	if len(result.MissingPrices) != 1 {
		t.Fatalf("expected exactly 1 missing-price entry for 5 affected orders, got %d", len(result.MissingPrices))
	}
	want := MissingPrice{SupplierName: "Acme", ProductName: "Gadget", Currency: "INR"}
	if result.MissingPrices[0] != want {
		t.Fatalf("expected %+v, got %+v", want, result.MissingPrices[0])
	}
	if len(result.Calculations) != 0 {
		t.Fatalf("expected no calculations without a price, got %d", len(result.Calculations))
	}
}

func TestCalculatePayoutsUnknownSupplierSkipped(t *testing.T) {
	order := deliveredOrder(uuid.New(), "A1", "Widget", 1, date(2024, 3, 1))

	result := CalculatePayouts([]model.Order{order}, nil, nil, BasisDeliveredDate)

	if len(result.Calculations) != 0 || len(result.MissingPrices) != 0 {
		t.Fatalf("expected unknown supplier skipped silently, got %+v", result)
	}
}

func TestCalculatePayoutsPerCurrencyAggregation(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
	}

	inr := deliveredOrder(acme.ID, "A1", "Widget", 1, date(2024, 3, 1))
	usd := deliveredOrder(acme.ID, "A2", "Widget", 2, date(2024, 3, 2))
	usd.Currency = "USD"

	result := CalculatePayouts([]model.Order{inr, usd}, entries, []model.Supplier{acme}, BasisDeliveredDate)

	if len(result.SupplierSummary) != 2 {
		t.Fatalf("expected one summary row per currency, got %d", len(result.SupplierSummary))
	}
}

func TestCalculatePayoutsSummaryConservation(t *testing.T) {
	acme := supplier("Acme")
	zen := supplier("Zen Traders")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
		entry(acme.ID, "Bolt", "12.50", date(2024, 1, 1), nil),
		entry(zen.ID, "Widget", "95.00", date(2024, 1, 1), nil),
	}
	orders := []model.Order{
		deliveredOrder(acme.ID, "A1", "Widget", 3, date(2024, 3, 1)),
		deliveredOrder(acme.ID, "A2", "Bolt", 10, date(2024, 3, 2)),
		deliveredOrder(zen.ID, "Z1", "Widget", 2, date(2024, 3, 3)),
	}

	result := CalculatePayouts(orders, entries, []model.Supplier{acme, zen}, BasisDeliveredDate)

	lineSum := decimal.Zero
	for _, c := range result.Calculations {
		lineSum = lineSum.Add(c.LineAmount)
	}
	summarySum := decimal.Zero
	for _, row := range result.SupplierSummary {
		summarySum = summarySum.Add(row.TotalAmount)
	}

	if !lineSum.Equal(summarySum) {
		t.Fatalf("summary total %s does not equal line total %s", summarySum, lineSum)
	}
}

func TestCalculatePayoutsIdempotent(t *testing.T) {
	acme := supplier("Acme")
	entries := []model.PriceEntry{
		entry(acme.ID, "Widget", "100.00", date(2024, 1, 1), nil),
	}
	orders := []model.Order{
		deliveredOrder(acme.ID, "A1", "Widget", 3, date(2024, 3, 1)),
		deliveredOrder(acme.ID, "A2", "Gadget", 1, date(2024, 3, 2)),
	}
	suppliers := []model.Supplier{acme}

	first := CalculatePayouts(orders, entries, suppliers, BasisDeliveredDate)
	second := CalculatePayouts(orders, entries, suppliers, BasisDeliveredDate)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output on repeated invocation")
	}
}

func TestParsePricingBasis(t *testing.T) {
	if got := ParsePricingBasis("order_date"); got != BasisOrderDate {
		t.Fatalf("expected order-date basis, got %s", got)
	}
	if got := ParsePricingBasis(""); got != BasisDeliveredDate {
		t.Fatalf("expected delivered-date default, got %s", got)
	}
	if got := ParsePricingBasis("ORDER"); got != BasisOrderDate {
		t.Fatalf("expected case-insensitive parse, got %s", got)
	}
}
