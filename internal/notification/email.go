// Package notification composes human-readable payout notices from computed
// supplier summaries. Delivery (SMTP/OAuth) is owned by the caller; this
// package only builds the text.
package notification

import (
	"fmt"
	"strings"
	"time"

	"vendorpay/backend/internal/payout"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutNotice is the content of one payout notification email.
type PayoutNotice struct {
	SupplierName string          `json:"supplier_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	PeriodFrom   time.Time       `json:"period_from"`
	PeriodTo     time.Time       `json:"period_to"`
	Reference    string          `json:"reference"` // UTR-style payout reference
	OrderCount   int             `json:"order_count"`
	UnitCount    int             `json:"unit_count"`
	ProductCount int             `json:"product_count"`
}

// NewReference generates a UTR-style payout reference token.
func NewReference() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "UTR" + token[:16]
}

// FromSummary builds a notice for one supplier/currency summary row over the
// given payout period.
func FromSummary(row payout.SupplierSummary, from, to time.Time) PayoutNotice {
	units := 0
	products := make(map[string]bool)
	for _, c := range row.Calculations {
		units += c.Qty
		products[strings.ToLower(c.ProductName)] = true
	}

	return PayoutNotice{
		SupplierName: row.SupplierName,
		Amount:       row.TotalAmount,
		Currency:     row.Currency,
		PeriodFrom:   from,
		PeriodTo:     to,
		Reference:    NewReference(),
		OrderCount:   row.OrderCount,
		UnitCount:    units,
		ProductCount: len(products),
	}
}

// ordinalSuffix returns the English ordinal suffix for a day of month.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatLongDate renders a date as e.g. "3rd March 2024".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s %d", t.Day(), ordinalSuffix(t.Day()), t.Month().String(), t.Year())
}

// Subject returns the email subject line.
func (n PayoutNotice) Subject() string {
	return fmt.Sprintf("Payout processed — %s %s for %s", n.Currency, n.Amount.StringFixed(2), n.SupplierName)
}

// Body returns the plain-text email body.
func (n PayoutNotice) Body() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", n.SupplierName)
	fmt.Fprintf(&b, "Your payout of %s %s for the period %s to %s has been processed.\n\n",
		n.Currency, n.Amount.StringFixed(2), FormatLongDate(n.PeriodFrom), FormatLongDate(n.PeriodTo))
	fmt.Fprintf(&b, "Reference (UTR): %s\n", n.Reference)
	fmt.Fprintf(&b, "Orders paid: %d\n", n.OrderCount)
	fmt.Fprintf(&b, "Units shipped: %d\n", n.UnitCount)
	fmt.Fprintf(&b, "Distinct products: %d\n\n", n.ProductCount)
	b.WriteString("Regards,\nAccounts Team")

	return b.String()
}
