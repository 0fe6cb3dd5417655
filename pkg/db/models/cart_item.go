package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID           uuid.UUID       `gorm:"column:cart_id;type:uuid;not null"`
	ProductVariantID uuid.UUID       `gorm:"column:product_variant_id;type:uuid;not null"`
	Quantity         int             `gorm:"column:quantity;not null"`
	Variant          *ProductVariant `gorm:"foreignKey:ProductVariantID"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
