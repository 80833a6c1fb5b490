package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is the root catalog entity. Orders and price entries reference it
// by id; product names are scoped to a supplier rather than globally unique.
type Supplier struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	OrderAccount    string         `gorm:"type:varchar(100)" json:"order_account"` // courier/channel account identifier
	GSTIN           string         `gorm:"type:varchar(20)" json:"gstin"`
	TradeName       string         `gorm:"type:varchar(255)" json:"trade_name"`
	BillingAddress  string         `gorm:"type:text" json:"billing_address"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	ContactEmail    string         `gorm:"type:varchar(255)" json:"contact_email"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
