package checkout

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const (
	// MaxQuantity bounds a single cart or order line.
	MaxQuantity = 9999
	// MaxAmountCents is the largest amount the integer money columns hold.
	MaxAmountCents = math.MaxInt32
)

// LineInput is one requested cart line: a variant and how many of it.
type LineInput struct {
	ProductVariantID uuid.UUID
	Quantity         int
}

// RequestInput holds the client-controlled parts of a checkout request.
type RequestInput struct {
	AddressID     uuid.UUID
	PaymentMethod enums.PaymentMethod
	Items         []LineInput
	Shipping      int
	Discount      int
}

// ValidateRequest returns the first rule the request breaks, as a
// validation error naming the offending field.
func ValidateRequest(in RequestInput) error {
	if in.AddressID == uuid.Nil {
		return violation("addressId", "address is required")
	}
	if !in.PaymentMethod.IsValid() {
		return violation("paymentMethod", fmt.Sprintf("invalid payment method %q", in.PaymentMethod))
	}
	if len(in.Items) == 0 {
		return violation("items", "at least one item is required")
	}
	if in.Shipping < 0 {
		return violation("shipping", "shipping must not be negative")
	}
	if in.Shipping > MaxAmountCents {
		return violation("shipping", "shipping is too large")
	}
	if in.Discount < 0 {
		return violation("discount", "discount must not be negative")
	}
	if in.Discount > MaxAmountCents {
		return violation("discount", "discount is too large")
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductVariantID == uuid.Nil {
			return violation(field+".productVariantId", "product variant is required")
		}
		if item.Quantity <= 0 {
			return violation(field+".quantity", "quantity must be greater than zero")
		}
		if item.Quantity > MaxQuantity {
			return violation(field+".quantity", fmt.Sprintf("quantity must not exceed %d", MaxQuantity))
		}
	}
	return nil
}

// ValidateTotals rejects orders whose amounts do not fit the money columns.
func ValidateTotals(t Totals) error {
	if t.Subtotal > MaxAmountCents || t.Subtotal+t.Shipping > MaxAmountCents {
		return violation("items", "order total is too large")
	}
	return nil
}

func violation(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{
		"field": field,
	})
}
