package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// OrderLineRequest is one requested line of POST /api/orders.
type OrderLineRequest struct {
	ProductVariantID uuid.UUID `json:"productVariantId"`
	Quantity         int       `json:"quantity"`
}

// CreateOrderRequest is the checkout body. Shipping falls back to the configured
// default when omitted; discount falls back to zero.
type CreateOrderRequest struct {
	AddressID     uuid.UUID          `json:"addressId"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []OrderLineRequest `json:"items"`
	Notes         *string            `json:"notes" validate:"omitempty,max=1000"`
	Shipping      *int               `json:"shipping"`
	Discount      *int               `json:"discount"`
}

// OrderSummary is returned with 201 after a successful checkout.
type OrderSummary struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	Subtotal      int                 `json:"subtotal"`
	Shipping      int                 `json:"shipping"`
	Discount      int                 `json:"discount"`
	Total         int                 `json:"total"`
	ItemCount     int                 `json:"itemCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func newOrderSummary(o *models.Order, items []models.OrderItem) *OrderSummary {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return &OrderSummary{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Subtotal:      o.Subtotal,
		Shipping:      o.Shipping,
		Discount:      o.Discount,
		Total:         o.Total,
		ItemCount:     count,
		CreatedAt:     o.CreatedAt,
	}
}
