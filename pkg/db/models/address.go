package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Address is a saved shipping address. At most one per user is the default.
type Address struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Street       string            `gorm:"column:street;not null"`
	Number       string            `gorm:"column:number;not null"`
	Complement   *string           `gorm:"column:complement"`
	Neighborhood string            `gorm:"column:neighborhood;not null"`
	City         string            `gorm:"column:city;not null"`
	State        string            `gorm:"column:state;not null"`
	ZipCode      string            `gorm:"column:zip_code;not null"`
	Country      string            `gorm:"column:country;not null"`
	Type         enums.AddressType `gorm:"column:type;not null"`
	IsDefault    bool              `gorm:"column:is_default;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
