package query

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/analytics/types"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Store runs the aggregate queries behind the admin reports. Every method is
// read-only and safe to call concurrently.
type Store interface {
	OrderTotals(ctx context.Context, f types.OrderFilter) (types.Totals, error)
	AverageOrderTotal(ctx context.Context, f types.OrderFilter) (float64, error)
	StatusBreakdown(ctx context.Context, f types.OrderFilter) ([]types.StatusBreakdown, error)
	PaymentStatusBreakdown(ctx context.Context, f types.OrderFilter) ([]types.PaymentStatusBreakdown, error)
	PaymentMethodBreakdown(ctx context.Context, f types.OrderFilter) ([]types.PaymentMethodBreakdown, error)
	OrderPoints(ctx context.Context, w types.Window) ([]types.OrderPoint, error)
	TopProducts(ctx context.Context, f types.TopProductsFilter) ([]types.ProductSales, error)
	CategorySales(ctx context.Context, w types.Window, limit int) ([]types.CategorySales, error)
	RecentOrders(ctx context.Context, limit int) ([]types.RecentOrder, error)
	CountProducts(ctx context.Context) (int64, error)
	CountVariants(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context, since *time.Time) (int64, error)
	// ActiveCustomers counts distinct buyers among the filtered orders.
	ActiveCustomers(ctx context.Context, f types.OrderFilter) (int64, error)
}

type store struct {
	db *gorm.DB
}

// NewStore builds a Store over the primary database.
func NewStore(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database required")
	}
	return &store{db: db}, nil
}

func (s *store) orders(ctx context.Context, f types.OrderFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Order{})
	if f.From != nil {
		q = q.Where("orders.created_at >= ?", *f.From)
	}
	if f.Until != nil {
		q = q.Where("orders.created_at < ?", *f.Until)
	}
	if f.UpdatedFrom != nil {
		q = q.Where("orders.updated_at >= ?", *f.UpdatedFrom)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("orders.payment_status = ?", f.PaymentStatus)
	}
	return q
}

func (s *store) OrderTotals(ctx context.Context, f types.OrderFilter) (types.Totals, error) {
	var out types.Totals
	err := s.orders(ctx, f).
		Select("COUNT(*) AS orders, COALESCE(SUM(orders.total), 0) AS revenue").
		Scan(&out).Error
	return out, err
}

func (s *store) AverageOrderTotal(ctx context.Context, f types.OrderFilter) (float64, error) {
	var row struct{ Average float64 }
	err := s.orders(ctx, f).
		Select("COALESCE(AVG(orders.total), 0) AS average").
		Scan(&row).Error
	return row.Average, err
}

func (s *store) StatusBreakdown(ctx context.Context, f types.OrderFilter) ([]types.StatusBreakdown, error) {
	var out []types.StatusBreakdown
	err := s.orders(ctx, f).
		Select("orders.status AS status, COUNT(*) AS count, COALESCE(SUM(orders.total), 0) AS total").
		Group("orders.status").
		Order("orders.status ASC").
		Scan(&out).Error
	return out, err
}

func (s *store) PaymentStatusBreakdown(ctx context.Context, f types.OrderFilter) ([]types.PaymentStatusBreakdown, error) {
	var out []types.PaymentStatusBreakdown
	err := s.orders(ctx, f).
		Select("orders.payment_status AS payment_status, COUNT(*) AS count, COALESCE(SUM(orders.total), 0) AS total").
		Group("orders.payment_status").
		Order("orders.payment_status ASC").
		Scan(&out).Error
	return out, err
}

func (s *store) PaymentMethodBreakdown(ctx context.Context, f types.OrderFilter) ([]types.PaymentMethodBreakdown, error) {
	var out []types.PaymentMethodBreakdown
	err := s.orders(ctx, f).
		Select("orders.payment_method AS method, COUNT(*) AS count, COALESCE(SUM(orders.total), 0) AS total").
		Group("orders.payment_method").
		Order("count DESC").
		Order("orders.payment_method ASC").
		Scan(&out).Error
	return out, err
}

func (s *store) OrderPoints(ctx context.Context, w types.Window) ([]types.OrderPoint, error) {
	var out []types.OrderPoint
	err := s.orders(ctx, types.OrderFilter{From: &w.Start, Until: &w.End}).
		Select("orders.created_at, orders.total, orders.status, orders.payment_method").
		Order("orders.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (s *store) TopProducts(ctx context.Context, f types.TopProductsFilter) ([]types.ProductSales, error) {
	q := s.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id")
	if f.From != nil {
		q = q.Where("orders.created_at >= ?", *f.From)
	}
	if f.Until != nil {
		q = q.Where("orders.created_at < ?", *f.Until)
	}
	if f.DeliveredOnly {
		q = q.Where("orders.status = ?", enums.OrderStatusDelivered)
	}
	if f.ByVariant {
		q = q.Select("order_items.product_name AS name, order_items.variant_name AS variant, " +
			"SUM(order_items.quantity) AS sold, SUM(order_items.total_price) AS revenue").
			Group("order_items.product_name, order_items.variant_name")
	} else {
		q = q.Select("order_items.product_name AS name, " +
			"SUM(order_items.quantity) AS sold, SUM(order_items.total_price) AS revenue").
			Group("order_items.product_name")
	}

	var out []types.ProductSales
	err := q.Order("sold DESC").Order("name ASC").Limit(limitOrDefault(f.Limit, 10)).Scan(&out).Error
	return out, err
}

func (s *store) CategorySales(ctx context.Context, w types.Window, limit int) ([]types.CategorySales, error) {
	var out []types.CategorySales
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("categories.name AS category, SUM(order_items.total_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", w.Start, w.End).
		Group("categories.name").
		Order("revenue DESC").
		Limit(limitOrDefault(limit, 10)).
		Scan(&out).Error
	return out, err
}

func (s *store) RecentOrders(ctx context.Context, limit int) ([]types.RecentOrder, error) {
	var out []types.RecentOrder
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("order_number, total, status, created_at").
		Order("created_at DESC").
		Limit(limitOrDefault(limit, 10)).
		Scan(&out).Error
	return out, err
}

func (s *store) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func (s *store) CountVariants(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.ProductVariant{}).Count(&n).Error
	return n, err
}

func (s *store) CountUsers(ctx context.Context, since *time.Time) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *store) ActiveCustomers(ctx context.Context, f types.OrderFilter) (int64, error) {
	var row struct{ Customers int64 }
	err := s.orders(ctx, f).
		Select("COUNT(DISTINCT orders.user_id) AS customers").
		Scan(&row).Error
	return row.Customers, err
}

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
