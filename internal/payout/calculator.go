// Package payout implements the payout-calculation and reconciliation engine:
// import value normalization, effective-date price resolution, payable-order
// calculation with supplier/currency aggregation, and report generation.
//
// Everything in this package is a pure, single-pass batch transformation over
// in-memory collections. Inputs are never mutated, business-logic conditions
// (missing price, missing basis date, unknown supplier) are reported as data
// rather than errors, and repeated invocations over the same snapshot yield
// identical output.
package payout

import (
	"strings"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingBasis selects which order date anchors the price lookup.
type PricingBasis string

const (
	BasisDeliveredDate PricingBasis = "delivered_date"
	BasisOrderDate     PricingBasis = "order_date"
)

// ParsePricingBasis folds a raw basis selector into the enum, defaulting to
// the delivered date.
func ParsePricingBasis(raw string) PricingBasis {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "order_date", "order":
		return BasisOrderDate
	default:
		return BasisDeliveredDate
	}
}

// Calculation is one payable order line with its resolved price applied.
type Calculation struct {
	OrderID      uuid.UUID       `json:"order_id"`
	AWB          string          `json:"awb"`
	SupplierName string          `json:"supplier_name"`
	ProductName  string          `json:"product_name"`
	Qty          int             `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineAmount   decimal.Decimal `json:"line_amount"`
	Currency     string          `json:"currency"`
	HSN          string          `json:"hsn"`
	BasisDate    string          `json:"basis_date"` // ISO date used for the price lookup
}

// SupplierSummary aggregates calculations for one (supplier, currency) pair.
// A supplier paid in two currencies yields two summary rows.
type SupplierSummary struct {
	SupplierName string          `json:"supplier_name"`
	Currency     string          `json:"currency"`
	OrderCount   int             `json:"order_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Calculations []Calculation   `json:"calculations"`
}

// MissingPrice identifies one unique payable combination with no resolvable
// price entry. Repeated occurrences collapse to a single entry.
type MissingPrice struct {
	SupplierName string `json:"supplier_name"`
	ProductName  string `json:"product_name"`
	Currency     string `json:"currency"`
}

// Result is the full output of one payout calculation pass.
type Result struct {
	Calculations    []Calculation     `json:"calculations"`
	SupplierSummary []SupplierSummary `json:"supplier_summary"`
	MissingPrices   []MissingPrice    `json:"missing_prices"`
}

type summaryKey struct {
	supplierName string
	currency     string
}

type missingKey struct {
	supplierName string
	productName  string // lower-cased, matching the resolver's comparison
	currency     string
}

// supplierIndex builds the supplier-by-id lookup once per pass.
func supplierIndex(suppliers []model.Supplier) map[uuid.UUID]*model.Supplier {
	idx := make(map[uuid.UUID]*model.Supplier, len(suppliers))
	for i := range suppliers {
		idx[suppliers[i].ID] = &suppliers[i]
	}
	return idx
}

// CalculatePayouts computes payable amounts for the given order snapshot.
//
// An order participates only when its status is payable (delivered/completed)
// and it carries the selected basis date; orders referencing an unknown
// supplier are skipped. Price resolution failures are collected as
// deduplicated missing-price entries in discovery order.
func CalculatePayouts(orders []model.Order, entries []model.PriceEntry, suppliers []model.Supplier, basis PricingBasis) Result {
	byID := supplierIndex(suppliers)

	result := Result{
		Calculations:    []Calculation{},
		SupplierSummary: []SupplierSummary{},
		MissingPrices:   []MissingPrice{},
	}

	summaryAt := make(map[summaryKey]int)
	seenMissing := make(map[missingKey]bool)

	for _, order := range orders {
		if !order.Status.Payable() {
			continue
		}

		basisDate := order.DeliveredDate
		if basis == BasisOrderDate {
			basisDate = order.OrderDate
		}
		if basisDate == nil {
			// Not yet ready for payout; distinct from a missing price.
			continue
		}

		supplier, ok := byID[order.SupplierID]
		if !ok {
			continue
		}

		entry := ResolvePrice(entries, order.SupplierID, order.ProductName, *basisDate)
		if entry == nil {
			key := missingKey{
				supplierName: supplier.Name,
				productName:  strings.ToLower(order.ProductName),
				currency:     order.Currency,
			}
			if !seenMissing[key] {
				seenMissing[key] = true
				result.MissingPrices = append(result.MissingPrices, MissingPrice{
					SupplierName: supplier.Name,
					ProductName:  order.ProductName,
					Currency:     order.Currency,
				})
			}
			continue
		}

		calc := Calculation{
			OrderID:      order.ID,
			AWB:          order.AWB,
			SupplierName: supplier.Name,
			ProductName:  order.ProductName,
			Qty:          order.Qty,
			UnitPrice:    entry.FinalPrice,
			LineAmount:   entry.FinalPrice.Mul(decimal.NewFromInt(int64(order.Qty))),
			Currency:     order.Currency,
			HSN:          entry.HSNCode,
			BasisDate:    basisDate.Format("2006-01-02"),
		}
		result.Calculations = append(result.Calculations, calc)

		sk := summaryKey{supplierName: supplier.Name, currency: order.Currency}
		at, ok := summaryAt[sk]
		if !ok {
			at = len(result.SupplierSummary)
			summaryAt[sk] = at
			result.SupplierSummary = append(result.SupplierSummary, SupplierSummary{
				SupplierName: supplier.Name,
				Currency:     order.Currency,
				TotalAmount:  decimal.Zero,
			})
		}
		row := &result.SupplierSummary[at]
		row.OrderCount++
		row.TotalAmount = row.TotalAmount.Add(calc.LineAmount)
		row.Calculations = append(row.Calculations, calc)
	}

	return result
}
