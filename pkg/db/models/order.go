package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is the header row of a checkout. Totals are fixed at creation.
type Order struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber       string              `gorm:"column:order_number;not null;uniqueIndex"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	AddressID         uuid.UUID           `gorm:"column:address_id;type:uuid;not null"`
	Status            enums.OrderStatus   `gorm:"column:status;not null"`
	PaymentMethod     enums.PaymentMethod `gorm:"column:payment_method;not null"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;not null"`
	TransactionID     *string             `gorm:"column:transaction_id"`
	Subtotal          int                 `gorm:"column:subtotal;not null"`
	Shipping          int                 `gorm:"column:shipping;not null"`
	Discount          int                 `gorm:"column:discount;not null"`
	Total             int                 `gorm:"column:total;not null"`
	Notes             *string             `gorm:"column:notes"`
	TrackingCode      *string             `gorm:"column:tracking_code"`
	EstimatedDelivery *time.Time          `gorm:"column:estimated_delivery"`
	User              *User               `gorm:"foreignKey:UserID"`
	Address           *Address            `gorm:"foreignKey:AddressID"`
	Items             []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
