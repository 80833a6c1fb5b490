package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationLog records one observed order status transition and its
// monetary impact. Entries are append-only: never updated, never deleted.
// A negative impact represents a payout clawback (e.g. delivered -> RTO after
// the order was already counted as payable).
type ReconciliationLog struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	AWB            string          `gorm:"type:varchar(100);index" json:"awb"`
	PreviousStatus OrderStatus     `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      OrderStatus     `gorm:"type:varchar(20);not null" json:"new_status"`
	Impact         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"impact"`
	Note           string          `gorm:"type:text" json:"note"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
}
