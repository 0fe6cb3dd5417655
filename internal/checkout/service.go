package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

const orderNumberConstraint = "orders_order_number_key"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderSummary, error)
}

// ServiceParams bundles checkout dependencies. Metrics, Logger, NewOrderNumber
// and Now are optional.
type ServiceParams struct {
	Tx             txRunner
	Repo           *Repository
	Config         config.CheckoutConfig
	Metrics        *metrics.CheckoutMetrics
	Logger         *logger.Logger
	NewOrderNumber checkout.OrderNumberFunc
	Now            func() time.Time
}

type service struct {
	tx          txRunner
	repo        *Repository
	cfg         config.CheckoutConfig
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
	orderNumber checkout.OrderNumberFunc
	now         func() time.Time
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	cfg := params.Config
	if cfg.OrderNumberAttempts < 1 {
		cfg.OrderNumberAttempts = 1
	}
	orderNumber := params.NewOrderNumber
	if orderNumber == nil {
		orderNumber = checkout.NewOrderNumber
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		tx:          params.Tx,
		repo:        params.Repo,
		cfg:         cfg,
		metrics:     params.Metrics,
		logg:        params.Logger,
		orderNumber: orderNumber,
		now:         now,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderSummary, error) {
	summary, err := s.createOrder(ctx, userID, req)
	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		s.metrics.IncFailed(string(code))
		return nil, err
	}
	s.metrics.IncCreated(string(summary.PaymentMethod))
	return summary, nil
}

func (s *service) createOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderSummary, error) {
	input := s.toInput(req)
	if err := checkout.ValidateRequest(input); err != nil {
		return nil, err
	}

	owned, err := s.repo.AddressOwnedBy(ctx, input.AddressID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup address")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address not found").
			WithDetails(map[string]any{"field": "addressId"})
	}

	items, lines, err := s.resolveLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	totals := checkout.ComputeTotals(lines, input.Shipping, input.Discount)
	if err := checkout.ValidateTotals(totals); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		AddressID:     input.AddressID,
		Status:        enums.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusPending,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Notes:         trimmedOrNil(req.Notes),
	}

	if err := s.persist(ctx, order, items); err != nil {
		return nil, err
	}
	return newOrderSummary(order, items), nil
}

func (s *service) toInput(req CreateOrderRequest) checkout.RequestInput {
	shipping := s.cfg.DefaultShippingCents
	if req.Shipping != nil {
		shipping = *req.Shipping
	}
	discount := 0
	if req.Discount != nil {
		discount = *req.Discount
	}
	lines := make([]checkout.LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, checkout.LineInput{ProductVariantID: item.ProductVariantID, Quantity: item.Quantity})
	}
	return checkout.RequestInput{
		AddressID:     req.AddressID,
		PaymentMethod: enums.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		Items:         lines,
		Shipping:      shipping,
		Discount:      discount,
	}
}

// resolveLines prices each line from its variant and snapshots the display data.
func (s *service) resolveLines(ctx context.Context, lines []checkout.LineInput) ([]models.OrderItem, []checkout.PricedLine, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductVariantID)
	}
	variants, err := s.repo.VariantsByID(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variants")
	}

	items := make([]models.OrderItem, 0, len(lines))
	priced := make([]checkout.PricedLine, 0, len(lines))
	for i, l := range lines {
		v, ok := variants[l.ProductVariantID]
		if !ok || v.Product == nil {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "variant not found").
				WithDetails(map[string]any{
					"field":            fmt.Sprintf("items[%d].productVariantId", i),
					"productVariantId": l.ProductVariantID,
				})
		}
		line := checkout.PricedLine{UnitPrice: v.PriceInCents, Quantity: l.Quantity}
		productID := v.ProductID
		variantID := v.ID
		items = append(items, models.OrderItem{
			ProductID:        &productID,
			ProductVariantID: &variantID,
			ProductName:      v.Product.Name,
			ProductImage:     v.ImageURL,
			VariantName:      v.Name,
			Color:            v.Color,
			Quantity:         l.Quantity,
			UnitPrice:        line.UnitPrice,
			TotalPrice:       line.LineTotal(),
		})
		priced = append(priced, line)
	}
	return items, priced, nil
}

// persist inserts the order and its items in one transaction, regenerating
// the order number when it collides with an existing one.
func (s *service) persist(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.OrderNumberAttempts; attempt++ {
		number, err := s.orderNumber(s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}
		order.ID = uuid.New()
		order.OrderNumber = number
		for i := range items {
			items[i].ID = uuid.Nil
		}

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).InsertOrder(ctx, order, items)
		})
		if err == nil {
			return nil
		}
		if !isOrderNumberCollision(err) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		s.metrics.IncCollision()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"order_number": number,
				"attempt":      attempt,
			}), "checkout.order_number_collision")
		}
		lastErr = err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "could not allocate a unique order number")
}

func isOrderNumberCollision(err error) bool {
	return db.IsUniqueViolation(err, orderNumberConstraint) ||
		db.IsUniqueViolation(err, "orders.order_number")
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
