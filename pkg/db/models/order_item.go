package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of a purchased variant. Snapshot columns
// are written once at checkout.
type OrderItem struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID        *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductVariantID *uuid.UUID `gorm:"column:product_variant_id;type:uuid"`
	ProductName      string     `gorm:"column:product_name;not null"`
	ProductImage     string     `gorm:"column:product_image;not null"`
	VariantName      string     `gorm:"column:variant_name;not null"`
	Color            string     `gorm:"column:color;not null"`
	Quantity         int        `gorm:"column:quantity;not null"`
	UnitPrice        int        `gorm:"column:unit_price;not null"`
	TotalPrice       int        `gorm:"column:total_price;not null"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
}
