package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactInfo is the single row of storefront contact details.
type ContactInfo struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Phone         *string   `gorm:"column:phone"`
	Email         *string   `gorm:"column:email"`
	Whatsapp      *string   `gorm:"column:whatsapp"`
	Instagram     *string   `gorm:"column:instagram"`
	Facebook      *string   `gorm:"column:facebook"`
	Twitter       *string   `gorm:"column:twitter"`
	Address       *string   `gorm:"column:address"`
	BusinessHours *string   `gorm:"column:business_hours"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}
