package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// AddItemRequest is the body of POST /api/cart/items. Quantity defaults to 1.
type AddItemRequest struct {
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Quantity  *int      `json:"quantity" validate:"omitempty,min=1,max=9999"`
}

// UpdateItemRequest is the body of PUT /api/cart/items/{itemId}.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=9999"`
}

type ProductRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Brand *string   `json:"brand"`
}

type VariantRef struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Color        string      `json:"color"`
	PriceInCents int         `json:"priceInCents"`
	ImageURL     string      `json:"imageUrl"`
	Product      *ProductRef `json:"product,omitempty"`
}

type ItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	Quantity  int        `json:"quantity"`
	ItemTotal int        `json:"itemTotal"`
	Variant   VariantRef `json:"variant"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Summary totals the cart. Shipping and discount are only applied at checkout.
type Summary struct {
	Subtotal  int `json:"subtotal"`
	Shipping  int `json:"shipping"`
	Discount  int `json:"discount"`
	Total     int `json:"total"`
	ItemCount int `json:"itemCount"`
}

type CartDTO struct {
	ID      uuid.UUID `json:"id"`
	Items   []ItemDTO `json:"items"`
	Summary Summary   `json:"summary"`
}

func newItemDTO(item *models.CartItem) ItemDTO {
	dto := ItemDTO{ID: item.ID, Quantity: item.Quantity, CreatedAt: item.CreatedAt}
	if v := item.Variant; v != nil {
		dto.ItemTotal = v.PriceInCents * item.Quantity
		dto.Variant = VariantRef{
			ID:           v.ID,
			Name:         v.Name,
			Slug:         v.Slug,
			Color:        v.Color,
			PriceInCents: v.PriceInCents,
			ImageURL:     v.ImageURL,
		}
		if p := v.Product; p != nil {
			dto.Variant.Product = &ProductRef{ID: p.ID, Name: p.Name, Slug: p.Slug, Brand: p.Brand}
		}
	}
	return dto
}

func newCartDTO(c *models.Cart) *CartDTO {
	out := &CartDTO{ID: c.ID, Items: make([]ItemDTO, 0, len(c.Items))}
	for i := range c.Items {
		item := newItemDTO(&c.Items[i])
		out.Items = append(out.Items, item)
		out.Summary.Subtotal += item.ItemTotal
		out.Summary.ItemCount += item.Quantity
	}
	out.Summary.Total = out.Summary.Subtotal + out.Summary.Shipping - out.Summary.Discount
	return out
}
