package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Prices live on its variants.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID        `gorm:"column:category_id;type:uuid;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Slug        string           `gorm:"column:slug;not null;uniqueIndex"`
	Description string           `gorm:"column:description;not null"`
	Brand       *string          `gorm:"column:brand"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
