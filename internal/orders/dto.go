package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/address"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// CustomerRef is the buyer block shown on admin order views.
type CustomerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone *string   `json:"phone,omitempty"`
}

// OrderListItemDTO is one row of an order listing.
type OrderListItemDTO struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	Subtotal      int                 `json:"subtotal"`
	Shipping      int                 `json:"shipping"`
	Discount      int                 `json:"discount"`
	Total         int                 `json:"total"`
	ItemCount     int64               `json:"itemCount"`
	TrackingCode  *string             `json:"trackingCode,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	User          *CustomerRef        `json:"user,omitempty"`
	Address       *address.AddressDTO `json:"address,omitempty"`
}

// OrderItemDTO is the purchase-time snapshot of one line.
type OrderItemDTO struct {
	ID               uuid.UUID  `json:"id"`
	ProductID        *uuid.UUID `json:"productId"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	ProductName      string     `json:"productName"`
	ProductImage     string     `json:"productImage"`
	VariantName      string     `json:"variantName"`
	Color            string     `json:"color"`
	Quantity         int        `json:"quantity"`
	UnitPrice        int        `json:"unitPrice"`
	TotalPrice       int        `json:"totalPrice"`
}

// OrderDetailDTO is the full order with its address, items and buyer.
type OrderDetailDTO struct {
	ID                uuid.UUID           `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	Status            enums.OrderStatus   `json:"status"`
	PaymentMethod     enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus     enums.PaymentStatus `json:"paymentStatus"`
	TransactionID     *string             `json:"transactionId"`
	Subtotal          int                 `json:"subtotal"`
	Shipping          int                 `json:"shipping"`
	Discount          int                 `json:"discount"`
	Total             int                 `json:"total"`
	Notes             *string             `json:"notes"`
	TrackingCode      *string             `json:"trackingCode"`
	EstimatedDelivery *time.Time          `json:"estimatedDelivery"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	User              *CustomerRef        `json:"user,omitempty"`
	Address           *address.AddressDTO `json:"address"`
	Items             []OrderItemDTO      `json:"items"`
}

// ListResult pairs a page of orders with its pagination block.
type ListResult struct {
	Orders     []OrderListItemDTO `json:"orders"`
	Pagination types.Pagination   `json:"pagination"`
}

// AdminListQuery carries the raw admin filter parameters.
type AdminListQuery struct {
	Status        string
	PaymentStatus string
	StartDate     string
	EndDate       string
	MinTotal      *int
	MaxTotal      *int
	Search        string
	SortBy        string
}

// UpdateStatusRequest is the body of PUT /api/admin/orders/{id}/status.
// At least one field must be present.
type UpdateStatusRequest struct {
	Status            *string `json:"status"`
	PaymentStatus     *string `json:"paymentStatus"`
	TrackingCode      *string `json:"trackingCode"`
	EstimatedDelivery *string `json:"estimatedDelivery"`
	Notes             *string `json:"notes" validate:"omitempty,max=1000"`
}

func customerRef(u *models.User, withPhone bool) *CustomerRef {
	if u == nil {
		return nil
	}
	ref := &CustomerRef{ID: u.ID, Name: u.Name, Email: u.Email}
	if withPhone {
		ref.Phone = u.Phone
	}
	return ref
}

func addressDTO(a *models.Address) *address.AddressDTO {
	if a == nil {
		return nil
	}
	return address.FromModel(a)
}

func newListItem(o models.Order, itemCount int64) OrderListItemDTO {
	return OrderListItemDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Subtotal:      o.Subtotal,
		Shipping:      o.Shipping,
		Discount:      o.Discount,
		Total:         o.Total,
		ItemCount:     itemCount,
		TrackingCode:  o.TrackingCode,
		CreatedAt:     o.CreatedAt,
		User:          customerRef(o.User, false),
		Address:       addressDTO(o.Address),
	}
}

func newDetail(o *models.Order, withCustomer bool) *OrderDetailDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			ProductName:      it.ProductName,
			ProductImage:     it.ProductImage,
			VariantName:      it.VariantName,
			Color:            it.Color,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice,
		})
	}
	dto := &OrderDetailDTO{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		PaymentMethod:     o.PaymentMethod,
		PaymentStatus:     o.PaymentStatus,
		TransactionID:     o.TransactionID,
		Subtotal:          o.Subtotal,
		Shipping:          o.Shipping,
		Discount:          o.Discount,
		Total:             o.Total,
		Notes:             o.Notes,
		TrackingCode:      o.TrackingCode,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Address:           addressDTO(o.Address),
		Items:             items,
	}
	if withCustomer {
		dto.User = customerRef(o.User, true)
	}
	return dto
}
