package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of semantic order states. Raw imported status
// text is folded into one of these exactly once, at the ingestion boundary;
// downstream logic switches on the variant, never on raw strings.
type OrderStatus string

const (
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusRTS       OrderStatus = "RTS"
	StatusRTO       OrderStatus = "RTO"
	StatusReturned  OrderStatus = "RETURNED"
	StatusOther     OrderStatus = "OTHER"
)

// ParseOrderStatus folds free-text status values (case-insensitive, padded)
// into the closed enum. Anything unrecognized maps to OTHER.
func ParseOrderStatus(raw string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "delivered":
		return StatusDelivered
	case "completed":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCancelled
	case "rts":
		return StatusRTS
	case "rto":
		return StatusRTO
	case "returned":
		return StatusReturned
	default:
		return StatusOther
	}
}

// Payable reports whether the status qualifies an order for payout.
func (s OrderStatus) Payable() bool {
	return s == StatusDelivered || s == StatusCompleted
}

// Reverse reports whether the status is a reverse-logistics state (RTS/RTO/returned).
func (s OrderStatus) Reverse() bool {
	return s == StatusRTS || s == StatusRTO || s == StatusReturned
}

// Order is one imported courier/fulfillment line item, keyed by AWB number.
// AWB uniqueness is per import batch, not global. Orders are mutated on status
// reconciliation but never deleted; they are the historical record.
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImportBatchID uuid.UUID   `gorm:"type:uuid;index" json:"import_batch_id"`
	AWB           string      `gorm:"type:varchar(100);index" json:"awb"`
	SupplierID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"supplier_id"`
	ProductName   string      `gorm:"type:varchar(255);index" json:"product_name"`
	Qty           int         `gorm:"not null;default:1" json:"qty"`
	Currency      string      `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	StatusRaw     string      `gorm:"type:varchar(100)" json:"status_raw"` // original imported text, kept for audit
	Courier       string      `gorm:"type:varchar(100)" json:"courier"`

	ChannelOrderDate *time.Time `gorm:"type:date" json:"channel_order_date"`
	OrderDate        *time.Time `gorm:"type:date" json:"order_date"`
	DeliveredDate    *time.Time `gorm:"type:date;index" json:"delivered_date"`
	RTSDate          *time.Time `gorm:"type:date" json:"rts_date"`

	// Pre-resolved pricing as it came off the import, kept as raw strings.
	// Reports parse these best-effort with a zero default.
	UnitPrice  string `gorm:"type:varchar(30)" json:"unit_price"`
	LineAmount string `gorm:"type:varchar(30)" json:"line_amount"`
	HSN        string `gorm:"type:varchar(20)" json:"hsn"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
