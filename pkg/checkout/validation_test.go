package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func validRequest() RequestInput {
	return RequestInput{
		AddressID:     uuid.New(),
		PaymentMethod: enums.PaymentMethodPix,
		Items:         []LineInput{{ProductVariantID: uuid.New(), Quantity: 2}},
		Shipping:      1000,
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	require.NoError(t, ValidateRequest(validRequest()))
}

func TestValidateRequest_FirstViolationWins(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*RequestInput)
		field string
	}{
		{"missing address", func(r *RequestInput) { r.AddressID = uuid.Nil }, "addressId"},
		{"bad payment method", func(r *RequestInput) { r.PaymentMethod = "bitcoin" }, "paymentMethod"},
		{"no items", func(r *RequestInput) { r.Items = nil }, "items"},
		{"negative shipping", func(r *RequestInput) { r.Shipping = -1 }, "shipping"},
		{"negative discount", func(r *RequestInput) { r.Discount = -1 }, "discount"},
		{"zero quantity", func(r *RequestInput) { r.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"quantity above max", func(r *RequestInput) { r.Items[0].Quantity = MaxQuantity + 1 }, "items[0].quantity"},
		{"huge quantity", func(r *RequestInput) { r.Items[0].Quantity = 4_000_000_000_000_000 }, "items[0].quantity"},
		{"shipping above max", func(r *RequestInput) { r.Shipping = MaxAmountCents + 1 }, "shipping"},
		{"discount above max", func(r *RequestInput) { r.Discount = MaxAmountCents + 1 }, "discount"},
		{"missing variant", func(r *RequestInput) { r.Items[0].ProductVariantID = uuid.Nil }, "items[0].productVariantId"},
		{"shipping before quantity", func(r *RequestInput) {
			r.Shipping = -5
			r.Items[0].Quantity = -1
		}, "shipping"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)

			err := ValidateRequest(req)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			require.Equal(t, pkgerrors.CodeValidation, typed.Code())
			require.Equal(t, tc.field, typed.Details().(map[string]any)["field"])
		})
	}
}

func TestValidateRequest_MaxQuantityAllowed(t *testing.T) {
	req := validRequest()
	req.Items[0].Quantity = MaxQuantity
	require.NoError(t, ValidateRequest(req))
}

func TestValidateTotals(t *testing.T) {
	require.NoError(t, ValidateTotals(ComputeTotals([]PricedLine{{UnitPrice: 45000, Quantity: MaxQuantity}}, 1000, 0)))

	err := ValidateTotals(ComputeTotals([]PricedLine{
		{UnitPrice: 45000, Quantity: MaxQuantity},
		{UnitPrice: 45000, Quantity: MaxQuantity},
		{UnitPrice: 45000, Quantity: MaxQuantity},
		{UnitPrice: 45000, Quantity: MaxQuantity},
		{UnitPrice: 45000, Quantity: MaxQuantity},
	}, 1000, 0))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "items", typed.Details().(map[string]any)["field"])
}
