package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Order, int64, error) {
	scope := filterScope(filters)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&models.Order{}).Scopes(scope)
	if filters.WithCustomer {
		q = q.Preload("User").Preload("Address")
	}
	switch filters.SortBy {
	case SortCreatedAtAsc:
		q = q.Order("orders.created_at ASC")
	case SortTotalDesc:
		q = q.Order("orders.total DESC").Order("orders.created_at DESC")
	case SortTotalAsc:
		q = q.Order("orders.total ASC").Order("orders.created_at DESC")
	default:
		q = q.Order("orders.created_at DESC")
	}

	var out []models.Order
	if err := q.Order("orders.id ASC").Limit(params.Limit).Offset(params.Offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) ItemCounts(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		OrderID uuid.UUID
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_id, COUNT(*) AS count").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OrderID] = row.Count
	}
	return out, nil
}

func (r *repository) FindDetail(ctx context.Context, orderID uuid.UUID, ownerID *uuid.UUID) (*models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC").Order("id ASC") }).
		Where("orders.id = ?", orderID)
	if ownerID != nil {
		q = q.Where("orders.user_id = ?", *ownerID)
	}
	var order models.Order
	if err := q.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateIfStatus(ctx context.Context, orderID uuid.UUID, ownerID *uuid.UUID, from []enums.OrderStatus, updates map[string]any) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	if len(from) > 0 {
		q = q.Where("status IN ?", from)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func filterScope(f ListFilters) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			q = q.Where("orders.user_id = ?", *f.UserID)
		}
		if len(f.Statuses) > 0 {
			q = q.Where("orders.status IN ?", f.Statuses)
		}
		if len(f.PaymentStatuses) > 0 {
			q = q.Where("orders.payment_status IN ?", f.PaymentStatuses)
		}
		if f.From != nil {
			q = q.Where("orders.created_at >= ?", *f.From)
		}
		if f.Until != nil {
			q = q.Where("orders.created_at < ?", *f.Until)
		}
		if f.MinTotal != nil {
			q = q.Where("orders.total >= ?", *f.MinTotal)
		}
		if f.MaxTotal != nil {
			q = q.Where("orders.total <= ?", *f.MaxTotal)
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			q = q.Where("UPPER(orders.order_number) LIKE ?", "%"+strings.ToUpper(search)+"%")
		}
		return q
	}
}
