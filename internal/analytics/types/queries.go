package types

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Period selects the lookback window of a report.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period12m Period = "12m"
)

// ParsePeriod maps query input to a Period. Empty or unknown values fall
// back to 30d.
func ParsePeriod(raw string) Period {
	switch p := Period(raw); p {
	case Period7d, Period30d, Period90d, Period12m:
		return p
	default:
		return Period30d
	}
}

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Totals is an order count with the summed order totals in cents.
type Totals struct {
	Orders  int64 `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// TimeSeriesPoint is one day of order activity.
type TimeSeriesPoint struct {
	Date    string `json:"date"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// HourPoint aggregates orders placed in the same UTC hour of day.
type HourPoint struct {
	Hour    int   `json:"hour"`
	Orders  int64 `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// WeekdayPoint aggregates orders by UTC weekday, 0 being Sunday.
type WeekdayPoint struct {
	Weekday int   `json:"weekday"`
	Orders  int64 `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// StatusBreakdown groups orders by fulfillment status.
type StatusBreakdown struct {
	Status enums.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
	Total  int64             `json:"total"`
}

// PaymentStatusBreakdown groups orders by payment status.
type PaymentStatusBreakdown struct {
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	Count         int64               `json:"count"`
	Total         int64               `json:"total"`
}

// PaymentMethodBreakdown groups orders by payment method.
type PaymentMethodBreakdown struct {
	Method enums.PaymentMethod `json:"method"`
	Count  int64               `json:"count"`
	Total  int64               `json:"total"`
}

// CategorySales is revenue attributed to one category.
type CategorySales struct {
	Category   string  `json:"category"`
	Revenue    int64   `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// ProductSales is a best-seller entry.
type ProductSales struct {
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
	Sold    int64  `json:"sold"`
	Revenue int64  `json:"revenue"`
}

// OrderStatsSummary backs GET /api/admin/orders/stats/summary.
type OrderStatsSummary struct {
	Period                Period                   `json:"period"`
	General               GeneralStats             `json:"general"`
	Recent                Totals                   `json:"recent"`
	OrdersByStatus        []StatusBreakdown        `json:"ordersByStatus"`
	OrdersByPaymentStatus []PaymentStatusBreakdown `json:"ordersByPaymentStatus"`
	OrdersByDay           []TimeSeriesPoint        `json:"ordersByDay"`
	TopProducts           []ProductSales           `json:"topProducts"`
}

// GeneralStats covers every order ever placed.
type GeneralStats struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      int64   `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// OrderStatsDashboard backs GET /api/admin/orders/stats/dashboard.
type OrderStatsDashboard struct {
	Today           Totals      `json:"today"`
	Month           Totals      `json:"month"`
	Pending         OrdersCount `json:"pending"`
	Processing      OrdersCount `json:"processing"`
	ShippedToday    int64       `json:"shippedToday"`
	PendingPayments Totals      `json:"pendingPayments"`
}

// OrdersCount wraps a bare order count.
type OrdersCount struct {
	Orders int64 `json:"orders"`
}

// Dashboard backs GET /api/admin/dashboard.
type Dashboard struct {
	Sales          SalesOverview    `json:"sales"`
	Products       ProductsOverview `json:"products"`
	Customers      CustomerOverview `json:"customers"`
	PendingOrders  PipelineOverview `json:"pendingOrders"`
	Revenue        RevenueOverview  `json:"revenue"`
	RecentActivity []Activity       `json:"recentActivity"`
}

// SalesOverview compares recent sales; Growth is month over month in percent.
type SalesOverview struct {
	Today  Totals  `json:"today"`
	Week   Totals  `json:"week"`
	Month  Totals  `json:"month"`
	Growth float64 `json:"growth"`
}

type ProductsOverview struct {
	Total      int64          `json:"total"`
	Variants   int64          `json:"variants"`
	TopSellers []ProductSales `json:"topSellers"`
}

type CustomerOverview struct {
	Total        int64 `json:"total"`
	NewToday     int64 `json:"newToday"`
	NewThisMonth int64 `json:"newThisMonth"`
	ActiveToday  int64 `json:"activeToday"`
}

type PipelineOverview struct {
	ToProcess int64 `json:"toProcess"`
	ToShip    int64 `json:"toShip"`
	ToDeliver int64 `json:"toDeliver"`
}

type RevenueOverview struct {
	Total           int64                    `json:"total"`
	AverageTicket   float64                  `json:"averageTicket"`
	ByPaymentMethod []PaymentMethodBreakdown `json:"byPaymentMethod"`
}

// Activity is one entry of the admin activity feed.
type Activity struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Time    time.Time         `json:"time"`
	Status  enums.OrderStatus `json:"status"`
}

// AnalyticsReport backs GET /api/admin/dashboard/analytics.
type AnalyticsReport struct {
	Period           Period                   `json:"period"`
	DateRange        Window                   `json:"dateRange"`
	SalesByDay       []TimeSeriesPoint        `json:"salesByDay"`
	SalesByCategory  []CategorySales          `json:"salesByCategory"`
	OrdersByStatus   []StatusBreakdown        `json:"ordersByStatus"`
	PaymentsByMethod []PaymentMethodBreakdown `json:"paymentsByMethod"`
	TopProducts      []ProductSales           `json:"topProducts"`
	SalesByHour      []HourPoint              `json:"salesByHour"`
	SalesByWeekday   []WeekdayPoint           `json:"salesByWeekday"`
}
