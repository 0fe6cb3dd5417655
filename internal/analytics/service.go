package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/internal/analytics/query"
	"github.com/angelmondragon/storefront-backend/internal/analytics/types"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const (
	summaryDayLimit      = 30
	topProductsLimit     = 10
	topSellersLimit      = 5
	categorySalesLimit   = 10
	recentActivityLimit  = 10
	activityTypeOrder    = "order"
	activityMessageStart = "Novo pedido"
)

// Service provides the admin order statistics and dashboards.
type Service interface {
	OrderStatsSummary(ctx context.Context, period string) (*types.OrderStatsSummary, error)
	OrderStatsDashboard(ctx context.Context) (*types.OrderStatsDashboard, error)
	Dashboard(ctx context.Context) (*types.Dashboard, error)
	Analytics(ctx context.Context, period string) (*types.AnalyticsReport, error)
}

type service struct {
	store query.Store
	now   func() time.Time
}

// NewService builds an analytics service backed by the aggregate store.
func NewService(store query.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("analytics store required")
	}
	return &service{store: store, now: time.Now}, nil
}

func (s *service) OrderStatsSummary(ctx context.Context, period string) (*types.OrderStatsSummary, error) {
	p := types.ParsePeriod(period)
	w := PeriodWindow(p, s.now())
	out := &types.OrderStatsSummary{Period: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.store.OrderTotals(gctx, types.OrderFilter{})
		if err != nil {
			return err
		}
		avg, err := s.store.AverageOrderTotal(gctx, types.OrderFilter{})
		if err != nil {
			return err
		}
		out.General = types.GeneralStats{
			TotalOrders:       totals.Orders,
			TotalRevenue:      totals.Revenue,
			AverageOrderValue: round(avg, 2),
		}
		return nil
	})
	g.Go(func() error {
		var err error
		out.Recent, err = s.store.OrderTotals(gctx, types.OrderFilter{From: &w.Start})
		return err
	})
	g.Go(func() error {
		var err error
		out.OrdersByStatus, err = s.store.StatusBreakdown(gctx, types.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		out.OrdersByPaymentStatus, err = s.store.PaymentStatusBreakdown(gctx, types.OrderFilter{})
		return err
	})
	g.Go(func() error {
		points, err := s.store.OrderPoints(gctx, w)
		if err != nil {
			return err
		}
		out.OrdersByDay = latestDays(bucketByDay(points, w, false), summaryDayLimit)
		return nil
	})
	g.Go(func() error {
		var err error
		out.TopProducts, err = s.store.TopProducts(gctx, types.TopProductsFilter{
			From: &w.Start, DeliveredOnly: true, ByVariant: true, Limit: topProductsLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order statistics")
	}
	return normalizeSummary(out), nil
}

func (s *service) OrderStatsDashboard(ctx context.Context) (*types.OrderStatsDashboard, error) {
	now := s.now()
	today := startOfDay(now)
	month := startOfMonth(now)
	out := &types.OrderStatsDashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Today, err = s.store.OrderTotals(gctx, types.OrderFilter{From: &today})
		return err
	})
	g.Go(func() error {
		var err error
		out.Month, err = s.store.OrderTotals(gctx, types.OrderFilter{From: &month})
		return err
	})
	g.Go(func() error {
		t, err := s.store.OrderTotals(gctx, types.OrderFilter{Status: enums.OrderStatusPending})
		out.Pending.Orders = t.Orders
		return err
	})
	g.Go(func() error {
		t, err := s.store.OrderTotals(gctx, types.OrderFilter{Status: enums.OrderStatusProcessing})
		out.Processing.Orders = t.Orders
		return err
	})
	g.Go(func() error {
		t, err := s.store.OrderTotals(gctx, types.OrderFilter{Status: enums.OrderStatusShipped, UpdatedFrom: &today})
		out.ShippedToday = t.Orders
		return err
	})
	g.Go(func() error {
		var err error
		out.PendingPayments, err = s.store.OrderTotals(gctx, types.OrderFilter{PaymentStatus: enums.PaymentStatusPending})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order dashboard")
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	now := s.now()
	today := startOfDay(now)
	weekAgo := today.AddDate(0, 0, -7)
	month := startOfMonth(now)
	lastMonth := month.AddDate(0, -1, 0)

	out := &types.Dashboard{}
	var lastMonthSales types.Totals
	var recent []types.RecentOrder
	var avgTicket float64

	g, gctx := errgroup.WithContext(ctx)
	totals := func(dst *types.Totals, f types.OrderFilter) {
		g.Go(func() error {
			var err error
			*dst, err = s.store.OrderTotals(gctx, f)
			return err
		})
	}
	counts := func(dst *int64, f types.OrderFilter) {
		g.Go(func() error {
			t, err := s.store.OrderTotals(gctx, f)
			*dst = t.Orders
			return err
		})
	}
	users := func(dst *int64, since *time.Time) {
		g.Go(func() error {
			var err error
			*dst, err = s.store.CountUsers(gctx, since)
			return err
		})
	}

	totals(&out.Sales.Today, types.OrderFilter{From: &today})
	totals(&out.Sales.Week, types.OrderFilter{From: &weekAgo})
	totals(&out.Sales.Month, types.OrderFilter{From: &month})
	totals(&lastMonthSales, types.OrderFilter{From: &lastMonth, Until: &month})

	g.Go(func() error {
		var err error
		out.Products.Total, err = s.store.CountProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Products.Variants, err = s.store.CountVariants(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Products.TopSellers, err = s.store.TopProducts(gctx, types.TopProductsFilter{Limit: topSellersLimit})
		return err
	})

	users(&out.Customers.Total, nil)
	users(&out.Customers.NewToday, &today)
	users(&out.Customers.NewThisMonth, &month)
	g.Go(func() error {
		var err error
		out.Customers.ActiveToday, err = s.store.ActiveCustomers(gctx, types.OrderFilter{From: &today})
		return err
	})

	counts(&out.PendingOrders.ToProcess, types.OrderFilter{Status: enums.OrderStatusPending})
	counts(&out.PendingOrders.ToShip, types.OrderFilter{Status: enums.OrderStatusProcessing})
	counts(&out.PendingOrders.ToDeliver, types.OrderFilter{Status: enums.OrderStatusShipped})

	g.Go(func() error {
		var err error
		avgTicket, err = s.store.AverageOrderTotal(gctx, types.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		out.Revenue.ByPaymentMethod, err = s.store.PaymentMethodBreakdown(gctx, types.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.store.RecentOrders(gctx, recentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load dashboard")
	}

	out.Sales.Growth = growthPercent(out.Sales.Month.Revenue, lastMonthSales.Revenue)
	out.Revenue.Total = out.Sales.Month.Revenue
	out.Revenue.AverageTicket = round(avgTicket, 2)
	out.RecentActivity = make([]types.Activity, 0, len(recent))
	for _, o := range recent {
		out.RecentActivity = append(out.RecentActivity, types.Activity{
			Type:    activityTypeOrder,
			Message: fmt.Sprintf("%s %s - R$ %s", activityMessageStart, o.OrderNumber, FormatCents(o.Total)),
			Time:    o.CreatedAt,
			Status:  o.Status,
		})
	}
	if out.Products.TopSellers == nil {
		out.Products.TopSellers = []types.ProductSales{}
	}
	if out.Revenue.ByPaymentMethod == nil {
		out.Revenue.ByPaymentMethod = []types.PaymentMethodBreakdown{}
	}
	return out, nil
}

func (s *service) Analytics(ctx context.Context, period string) (*types.AnalyticsReport, error) {
	p := types.ParsePeriod(period)
	w := PeriodWindow(p, s.now())
	out := &types.AnalyticsReport{Period: p, DateRange: w}
	filter := types.OrderFilter{From: &w.Start, Until: &w.End}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		points, err := s.store.OrderPoints(gctx, w)
		if err != nil {
			return err
		}
		out.SalesByDay = bucketByDay(points, w, true)
		out.SalesByHour = bucketByHour(points)
		out.SalesByWeekday = bucketByWeekday(points)
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.CategorySales(gctx, w, categorySalesLimit)
		if err != nil {
			return err
		}
		out.SalesByCategory = withShares(rows)
		return nil
	})
	g.Go(func() error {
		var err error
		out.OrdersByStatus, err = s.store.StatusBreakdown(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		out.PaymentsByMethod, err = s.store.PaymentMethodBreakdown(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		out.TopProducts, err = s.store.TopProducts(gctx, types.TopProductsFilter{
			From: &w.Start, Until: &w.End, DeliveredOnly: true, ByVariant: true, Limit: topProductsLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load analytics")
	}
	return normalizeReport(out), nil
}

// FormatCents renders an amount in cents with two decimal places.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// growthPercent is the change from previous to current, in percent with one
// decimal. A zero baseline yields zero.
func growthPercent(current, previous int64) float64 {
	if previous <= 0 {
		return 0
	}
	prev := decimal.NewFromInt(previous)
	return decimal.NewFromInt(current).Sub(prev).
		Div(prev).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func withShares(rows []types.CategorySales) []types.CategorySales {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(decimal.NewFromInt(r.Revenue))
	}
	out := make([]types.CategorySales, 0, len(rows))
	for _, r := range rows {
		if total.IsPositive() {
			r.Percentage = decimal.NewFromInt(r.Revenue).
				Div(total).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				InexactFloat64()
		}
		out = append(out, r)
	}
	return out
}

// latestDays keeps the newest limit days, newest first.
func latestDays(points []types.TimeSeriesPoint, limit int) []types.TimeSeriesPoint {
	out := make([]types.TimeSeriesPoint, 0, len(points))
	for i := len(points) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, points[i])
	}
	return out
}

func normalizeSummary(s *types.OrderStatsSummary) *types.OrderStatsSummary {
	if s.OrdersByStatus == nil {
		s.OrdersByStatus = []types.StatusBreakdown{}
	}
	if s.OrdersByPaymentStatus == nil {
		s.OrdersByPaymentStatus = []types.PaymentStatusBreakdown{}
	}
	if s.TopProducts == nil {
		s.TopProducts = []types.ProductSales{}
	}
	return s
}

func normalizeReport(r *types.AnalyticsReport) *types.AnalyticsReport {
	if r.OrdersByStatus == nil {
		r.OrdersByStatus = []types.StatusBreakdown{}
	}
	if r.PaymentsByMethod == nil {
		r.PaymentsByMethod = []types.PaymentMethodBreakdown{}
	}
	if r.TopProducts == nil {
		r.TopProducts = []types.ProductSales{}
	}
	return r
}
