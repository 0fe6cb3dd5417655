package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is the purchasable unit and the only source of price.
type ProductVariant struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex"`
	Color        string    `gorm:"column:color;not null"`
	PriceInCents int       `gorm:"column:price_in_cents;not null"`
	ImageURL     string    `gorm:"column:image_url;not null"`
	Product      *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
