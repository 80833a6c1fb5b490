package payout

import "testing"

func TestNormalizeRowCanonicalizesDates(t *testing.T) {
	fields := map[string]string{
		FieldDeliveredDate: "Delivery Date",
		FieldOrderDate:     "Order Date",
	}
	row := map[string]string{
		"Delivery Date": " 15/03/2024 ",
		"Order Date":    "2024-03-10",
	}

	record := NormalizeRow(fields, row)

	if got := record[FieldDeliveredDate]; got != "2024-03-15" {
		t.Fatalf("expected delivered date 2024-03-15, got %q", got)
	}
	if got := record[FieldOrderDate]; got != "2024-03-10" {
		t.Fatalf("expected order date 2024-03-10, got %q", got)
	}
}

func TestNormalizeRowPreservesUnparseableDates(t *testing.T) {
	fields := map[string]string{FieldDeliveredDate: "Delivery Date"}
	row := map[string]string{"Delivery Date": "sometime next week"}

	record := NormalizeRow(fields, row)

	// Silent best-effort: the raw string survives, no error is raised.
	if got := record[FieldDeliveredDate]; got != "sometime next week" {
		t.Fatalf("expected raw string preserved, got %q", got)
	}
}

func TestNormalizeRowQuantityDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"valid", "3", "3"},
		{"padded", " 7 ", "7"},
		{"absent", "", "1"},
		{"garbage", "three", "1"},
		{"zero", "0", "1"},
		{"negative", "-2", "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := map[string]string{FieldQty: "Qty"}
			record := NormalizeRow(fields, map[string]string{"Qty": tc.raw})
			if got := record[FieldQty]; got != tc.want {
				t.Fatalf("qty %q: expected %q, got %q", tc.raw, tc.want, got)
			}
		})
	}
}

func TestNormalizeRowCurrencyDefaultsToINR(t *testing.T) {
	fields := map[string]string{FieldCurrency: "Currency"}

	record := NormalizeRow(fields, map[string]string{"Currency": ""})
	if got := record[FieldCurrency]; got != "INR" {
		t.Fatalf("expected INR default, got %q", got)
	}

	record = NormalizeRow(fields, map[string]string{"Currency": "USD"})
	if got := record[FieldCurrency]; got != "USD" {
		t.Fatalf("expected USD kept, got %q", got)
	}
}

func TestNormalizeRowTrimsEveryValue(t *testing.T) {
	fields := map[string]string{
		FieldAWB:     "AWB No",
		FieldProduct: "Item",
	}
	row := map[string]string{
		"AWB No": "  AWB123  ",
		"Item":   "\tWidget ",
	}

	record := NormalizeRow(fields, row)

	if got := record[FieldAWB]; got != "AWB123" {
		t.Fatalf("expected trimmed AWB, got %q", got)
	}
	if got := record[FieldProduct]; got != "Widget" {
		t.Fatalf("expected trimmed product, got %q", got)
	}
}

func TestNormalizeRowMissingColumn(t *testing.T) {
	fields := map[string]string{FieldAWB: "AWB No"}

	record := NormalizeRow(fields, map[string]string{})

	if got, ok := record[FieldAWB]; !ok || got != "" {
		t.Fatalf("expected empty value for unmapped column, got %q (present=%v)", got, ok)
	}
}
