package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleOrder represents a completed (or in-flight) sales transaction.
// The segmentation engine only ever reads these rows; they are written
// by the sales module.
type SaleOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index:idx_sale_orders_client_date" json:"client_id"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_sale_orders_customer" json:"customer_id"`
	OrderNumber string    `gorm:"type:text;unique;not null" json:"order_number"`

	Status      string    `gorm:"type:text;not null;default:'draft'" json:"status"`
	TotalAmount float64   `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	OrderDate   time.Time `gorm:"not null;index:idx_sale_orders_client_date" json:"order_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (SaleOrder) TableName() string {
	return "sale_orders"
}

// BeforeCreate sets UUID before creating
func (o *SaleOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Order status constants
const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDone      = "done"
	OrderStatusCancelled = "cancelled"
)
