package payout

import (
	"sort"
	"strings"
	"time"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filters scopes report generation. Zero values mean "no filter". The
// cancelled-orders report ignores filters entirely and always scans the full
// order set.
type Filters struct {
	PeriodFrom *time.Time       `json:"period_from"`
	PeriodTo   *time.Time       `json:"period_to"`
	Currency   string           `json:"currency"`
	Supplier   string           `json:"supplier"`
	MinAmount  *decimal.Decimal `json:"min_amount"` // floor applied to supplier-summary rows only
}

// SupplierPayoutRow is one (supplier, currency) aggregate in the supplier
// payout summary, built from amounts persisted on the orders themselves.
type SupplierPayoutRow struct {
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	Currency        string          `json:"currency"`
	TotalOrders     int             `json:"total_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	RTSOrders       int             `json:"rts_orders"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// PayoutSheetRow is one delivered/completed order on the payout export sheet.
type PayoutSheetRow struct {
	AWB           string            `json:"awb"`
	SupplierName  string            `json:"supplier_name"`
	Courier       string            `json:"courier"`
	HSN           string            `json:"hsn"`
	ProductName   string            `json:"product_name"`
	Qty           int               `json:"qty"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
	DeliveredDate string            `json:"delivered_date"`
	Status        model.OrderStatus `json:"status"`
}

// CancelledOrderRow is one cancelled order from the unfiltered order set.
// The supplier name is intentionally not joined here; it stays "Unknown".
type CancelledOrderRow struct {
	AWB              string            `json:"awb"`
	SupplierName     string            `json:"supplier_name"`
	ProductName      string            `json:"product_name"`
	Qty              int               `json:"qty"`
	Status           model.OrderStatus `json:"status"`
	ChannelOrderDate string            `json:"channel_order_date"`
	OrderDate        string            `json:"order_date"`
}

// Exception record types flagged by the exceptions report.
const (
	ExceptionMissingAWB      = "missing_awb"
	ExceptionMissingProduct  = "missing_product"
	ExceptionInvalidQuantity = "invalid_quantity"
)

// OrderException flags one data-quality violation on one order. An order can
// produce multiple records, one per violated rule.
type OrderException struct {
	RowIndex    int       `json:"row_index"` // 1-based position in the iterated order list
	Type        string    `json:"type"`
	Description string    `json:"description"`
	OrderID     uuid.UUID `json:"order_id"`
}

// LineDetailRow is one order enriched with its supplier name and basis date.
type LineDetailRow struct {
	OrderID      uuid.UUID         `json:"order_id"`
	AWB          string            `json:"awb"`
	SupplierName string            `json:"supplier_name"`
	ProductName  string            `json:"product_name"`
	Qty          int               `json:"qty"`
	Currency     string            `json:"currency"`
	Status       model.OrderStatus `json:"status"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	LineAmount   decimal.Decimal   `json:"line_amount"`
	BasisDate    string            `json:"basis_date"` // delivered date, else order date, else empty
}

// Bundle carries the six report views derived from one snapshot.
type Bundle struct {
	SupplierSummary   []SupplierPayoutRow       `json:"supplier_summary"`
	PayoutSheet       []PayoutSheetRow          `json:"payout_sheet"`
	CancelledOrders   []CancelledOrderRow       `json:"cancelled_orders"`
	ReconciliationLog []model.ReconciliationLog `json:"reconciliation_log"`
	Exceptions        []OrderException          `json:"exceptions"`
	LineDetails       []LineDetailRow           `json:"line_details"`
}

// ParseAmount reads a persisted money string best-effort, defaulting to zero
// when absent or unparseable.
func ParseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// filterOrders applies the report filter pipeline: period-from, period-to,
// currency, supplier — each a narrowing AND-filter. Orders without a delivered
// date are dropped by the period filters. An unknown supplier-name filter is a
// deliberate silent no-op.
func filterOrders(orders []model.Order, suppliers []model.Supplier, f Filters) []model.Order {
	filtered := orders

	if f.PeriodFrom != nil {
		from := day(*f.PeriodFrom)
		next := make([]model.Order, 0, len(filtered))
		for _, o := range filtered {
			if o.DeliveredDate != nil && !day(*o.DeliveredDate).Before(from) {
				next = append(next, o)
			}
		}
		filtered = next
	}

	if f.PeriodTo != nil {
		to := day(*f.PeriodTo)
		next := make([]model.Order, 0, len(filtered))
		for _, o := range filtered {
			if o.DeliveredDate != nil && !day(*o.DeliveredDate).After(to) {
				next = append(next, o)
			}
		}
		filtered = next
	}

	if f.Currency != "" {
		next := make([]model.Order, 0, len(filtered))
		for _, o := range filtered {
			if o.Currency == f.Currency {
				next = append(next, o)
			}
		}
		filtered = next
	}

	if f.Supplier != "" {
		var supplierID *uuid.UUID
		for i := range suppliers {
			if strings.EqualFold(suppliers[i].Name, f.Supplier) {
				supplierID = &suppliers[i].ID
				break
			}
		}
		if supplierID != nil {
			next := make([]model.Order, 0, len(filtered))
			for _, o := range filtered {
				if o.SupplierID == *supplierID {
					next = append(next, o)
				}
			}
			filtered = next
		}
	}

	return filtered
}

// GenerateReports derives the six report views from the supplied snapshot.
// The filter pipeline scopes every report except the cancelled-orders report
// and the reconciliation log, which are passed the full inputs.
func GenerateReports(orders []model.Order, suppliers []model.Supplier, logs []model.ReconciliationLog, f Filters) Bundle {
	byID := supplierIndex(suppliers)
	filtered := filterOrders(orders, suppliers, f)

	bundle := Bundle{
		SupplierSummary:   supplierPayoutSummary(filtered, byID, f.MinAmount),
		PayoutSheet:       payoutSheet(filtered, byID),
		CancelledOrders:   cancelledOrders(orders),
		ReconciliationLog: logs,
		Exceptions:        orderExceptions(filtered),
		LineDetails:       lineDetails(filtered, byID),
	}

	return bundle
}

func supplierPayoutSummary(orders []model.Order, byID map[uuid.UUID]*model.Supplier, minAmount *decimal.Decimal) []SupplierPayoutRow {
	type rowKey struct {
		supplierID uuid.UUID
		currency   string
	}

	rows := []SupplierPayoutRow{}
	at := make(map[rowKey]int)

	for _, o := range orders {
		key := rowKey{supplierID: o.SupplierID, currency: o.Currency}
		i, ok := at[key]
		if !ok {
			name := "Unknown"
			if s, found := byID[o.SupplierID]; found {
				name = s.Name
			}
			i = len(rows)
			at[key] = i
			rows = append(rows, SupplierPayoutRow{
				SupplierID:   o.SupplierID,
				SupplierName: name,
				Currency:     o.Currency,
				TotalAmount:  decimal.Zero,
			})
		}

		row := &rows[i]
		row.TotalOrders++
		switch {
		case o.Status.Payable():
			row.DeliveredOrders++
			row.TotalAmount = row.TotalAmount.Add(ParseAmount(o.LineAmount))
		case o.Status.Reverse():
			row.RTSOrders++
		}
	}

	if minAmount != nil {
		kept := rows[:0]
		for _, r := range rows {
			if r.TotalAmount.Cmp(*minAmount) >= 0 {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].TotalAmount.Cmp(rows[b].TotalAmount) > 0
	})

	return rows
}

func payoutSheet(orders []model.Order, byID map[uuid.UUID]*model.Supplier) []PayoutSheetRow {
	rows := []PayoutSheetRow{}
	for _, o := range orders {
		if !o.Status.Payable() {
			continue
		}
		name := ""
		if s, ok := byID[o.SupplierID]; ok {
			name = s.Name
		}
		rows = append(rows, PayoutSheetRow{
			AWB:           o.AWB,
			SupplierName:  name,
			Courier:       o.Courier,
			HSN:           o.HSN,
			ProductName:   o.ProductName,
			Qty:           o.Qty,
			UnitPrice:     ParseAmount(o.UnitPrice),
			DeliveredDate: formatDate(o.DeliveredDate),
			Status:        o.Status,
		})
	}
	return rows
}

func cancelledOrders(orders []model.Order) []CancelledOrderRow {
	rows := []CancelledOrderRow{}
	for _, o := range orders {
		if o.Status != model.StatusCancelled {
			continue
		}
		rows = append(rows, CancelledOrderRow{
			AWB:              o.AWB,
			SupplierName:     "Unknown", // supplier is deliberately not joined on this report
			ProductName:      o.ProductName,
			Qty:              o.Qty,
			Status:           o.Status,
			ChannelOrderDate: formatDate(o.ChannelOrderDate),
			OrderDate:        formatDate(o.OrderDate),
		})
	}
	return rows
}

func orderExceptions(orders []model.Order) []OrderException {
	exceptions := []OrderException{}
	for i, o := range orders {
		row := i + 1
		if strings.TrimSpace(o.AWB) == "" {
			exceptions = append(exceptions, OrderException{
				RowIndex:    row,
				Type:        ExceptionMissingAWB,
				Description: "order has no AWB number",
				OrderID:     o.ID,
			})
		}
		if strings.TrimSpace(o.ProductName) == "" {
			exceptions = append(exceptions, OrderException{
				RowIndex:    row,
				Type:        ExceptionMissingProduct,
				Description: "order has no product name",
				OrderID:     o.ID,
			})
		}
		if o.Qty <= 0 {
			exceptions = append(exceptions, OrderException{
				RowIndex:    row,
				Type:        ExceptionInvalidQuantity,
				Description: "order quantity is not positive",
				OrderID:     o.ID,
			})
		}
	}
	return exceptions
}

func lineDetails(orders []model.Order, byID map[uuid.UUID]*model.Supplier) []LineDetailRow {
	rows := make([]LineDetailRow, 0, len(orders))
	for _, o := range orders {
		name := ""
		if s, ok := byID[o.SupplierID]; ok {
			name = s.Name
		}

		basis := formatDate(o.DeliveredDate)
		if basis == "" {
			basis = formatDate(o.OrderDate)
		}

		rows = append(rows, LineDetailRow{
			OrderID:      o.ID,
			AWB:          o.AWB,
			SupplierName: name,
			ProductName:  o.ProductName,
			Qty:          o.Qty,
			Currency:     o.Currency,
			Status:       o.Status,
			UnitPrice:    ParseAmount(o.UnitPrice),
			LineAmount:   ParseAmount(o.LineAmount),
			BasisDate:    basis,
		})
	}
	return rows
}
