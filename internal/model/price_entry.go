package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceEntry maps (supplier, product, currency) to a payable unit price with
// GST breakdown and a validity interval. EffectiveTo nil means open-ended.
// Overlapping intervals are not rejected at write time; the resolver picks the
// entry with the latest effective_from not after the reference date.
type PriceEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	ProductName    string          `gorm:"type:varchar(255);not null;index" json:"product_name"`
	Currency       string          `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	PriceBeforeGST decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price_before_gst"`
	GSTRate        decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"gst_rate"` // e.g. 0.18 = 18%
	FinalPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"final_price"`        // post-GST unit price used for payout
	HSNCode        string          `gorm:"type:varchar(20)" json:"hsn_code"`
	EffectiveFrom  time.Time       `gorm:"type:date;not null;index" json:"effective_from"`
	EffectiveTo    *time.Time      `gorm:"type:date;index" json:"effective_to"` // nil = currently active
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
