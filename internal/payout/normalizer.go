package payout

import (
	"strconv"
	"strings"
	"time"
)

// Logical field names used by the import column mapping.
const (
	FieldAWB              = "awb"
	FieldSupplier         = "supplier"
	FieldProduct          = "product_name"
	FieldQty              = "quantity"
	FieldCurrency         = "currency"
	FieldStatus           = "status"
	FieldCourier          = "courier"
	FieldChannelOrderDate = "channel_order_date"
	FieldOrderDate        = "order_date"
	FieldDeliveredDate    = "delivered_date"
	FieldRTSDate          = "rts_date"
	FieldUnitPrice        = "unit_price"
	FieldLineAmount       = "line_amount"
	FieldHSN              = "hsn"
)

// DefaultCurrency is assumed when an imported row carries no currency column.
const DefaultCurrency = "INR"

// dateLayouts are tried in order when normalizing date-like fields.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate attempts to parse an imported date string against the known
// layouts, returning the day-truncated time and whether parsing succeeded.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeRow shapes one raw imported row into a normalized record.
//
// fields maps logical field name -> imported column header; row maps column
// header -> raw cell value. The result maps logical field name -> cleaned
// value. This is pure best-effort data shaping and never fails:
//
//   - fields whose logical name contains "date" are canonicalized to
//     YYYY-MM-DD when parseable, otherwise the trimmed raw string is kept
//   - quantity defaults to "1" when absent, unparseable, or non-positive
//   - currency defaults to "INR" when absent
//   - every value is whitespace-trimmed
func NormalizeRow(fields map[string]string, row map[string]string) map[string]string {
	record := make(map[string]string, len(fields))

	for name, header := range fields {
		value := strings.TrimSpace(row[header])

		switch {
		case strings.Contains(strings.ToLower(name), "date"):
			if t, ok := ParseDate(value); ok {
				value = t.Format("2006-01-02")
			}
		case name == FieldQty:
			qty, err := strconv.Atoi(value)
			if err != nil || qty <= 0 {
				value = "1"
			} else {
				value = strconv.Itoa(qty)
			}
		case name == FieldCurrency:
			if value == "" {
				value = DefaultCurrency
			}
		}

		record[name] = value
	}

	return record
}
