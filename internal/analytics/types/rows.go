package types

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// OrderPoint is the slice of an order row needed for time bucketing.
type OrderPoint struct {
	CreatedAt     time.Time
	Total         int64
	Status        enums.OrderStatus
	PaymentMethod enums.PaymentMethod
}

// RecentOrder feeds the activity list.
type RecentOrder struct {
	OrderNumber string
	Total       int64
	Status      enums.OrderStatus
	CreatedAt   time.Time
}

// OrderFilter narrows aggregate order queries. Zero fields do not filter.
type OrderFilter struct {
	From          *time.Time
	Until         *time.Time
	UpdatedFrom   *time.Time
	Status        enums.OrderStatus
	PaymentStatus enums.PaymentStatus
}

// TopProductsFilter narrows best-seller queries.
type TopProductsFilter struct {
	From          *time.Time
	Until         *time.Time
	DeliveredOnly bool
	// ByVariant groups by product and variant name instead of product name.
	ByVariant bool
	Limit     int
}
