package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Order, int64, error)
	ItemCounts(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	FindDetail(ctx context.Context, orderID uuid.UUID, ownerID *uuid.UUID) (*models.Order, error)
	// UpdateIfStatus applies updates only while the order is in one of from.
	// It reports whether a row changed.
	UpdateIfStatus(ctx context.Context, orderID uuid.UUID, ownerID *uuid.UUID, from []enums.OrderStatus, updates map[string]any) (bool, error)
}

// Sort keys for the admin order list.
const (
	SortCreatedAtDesc = "createdAt_desc"
	SortCreatedAtAsc  = "createdAt_asc"
	SortTotalDesc     = "total_desc"
	SortTotalAsc      = "total_asc"
)

// ListFilters narrows customer and admin order listings.
type ListFilters struct {
	UserID          *uuid.UUID
	Statuses        []enums.OrderStatus
	PaymentStatuses []enums.PaymentStatus
	From            *time.Time
	// Until is exclusive.
	Until    *time.Time
	MinTotal *int
	MaxTotal *int
	Search   string
	SortBy   string
	// WithCustomer preloads the user and address of each order.
	WithCustomer bool
}
