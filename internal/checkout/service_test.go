package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgcheckout "github.com/angelmondragon/storefront-backend/pkg/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

func intPtr(v int) *int { return &v }

type fixture struct {
	db       *gorm.DB
	reg      *prometheus.Registry
	userID   uuid.UUID
	address  models.Address
	ssd      models.ProductVariant
	ram      models.ProductVariant
	numberFn pkgcheckout.OrderNumberFunc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	f := &fixture{db: conn, reg: prometheus.NewRegistry(), userID: uuid.New()}

	f.address = models.Address{
		ID: uuid.New(), UserID: f.userID, Street: "Rua A", Number: "1", Neighborhood: "Centro",
		City: "Recife", State: "PE", ZipCode: "50000-000", Country: "Brasil", Type: enums.AddressTypeHome, IsDefault: true,
	}
	require.NoError(t, conn.Create(&f.address).Error)

	product := models.Product{ID: uuid.New(), CategoryID: uuid.New(), Name: "SSD NVMe", Slug: "ssd-nvme", Description: "d"}
	require.NoError(t, conn.Omit("Category", "Variants").Create(&product).Error)
	f.ssd = models.ProductVariant{ID: uuid.New(), ProductID: product.ID, Name: "1TB", Slug: "1tb-preto", Color: "Preto", PriceInCents: 45000, ImageURL: "https://cdn.example.com/ssd.png"}
	f.ram = models.ProductVariant{ID: uuid.New(), ProductID: product.ID, Name: "2TB", Slug: "2tb-preto", Color: "Preto", PriceInCents: 2500, ImageURL: "https://cdn.example.com/ssd2.png"}
	require.NoError(t, conn.Omit("Product").Create(&f.ssd).Error)
	require.NoError(t, conn.Omit("Product").Create(&f.ram).Error)
	return f
}

func (f *fixture) service(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Tx:             db.Wrap(f.db),
		Repo:           NewRepository(f.db),
		Config:         config.CheckoutConfig{DefaultShippingCents: 1000, OrderNumberAttempts: 3},
		Metrics:        metrics.NewCheckoutMetrics(f.reg),
		NewOrderNumber: f.numberFn,
	})
	require.NoError(t, err)
	return svc
}

func (f *fixture) request() CreateOrderRequest {
	return CreateOrderRequest{
		AddressID:     f.address.ID,
		PaymentMethod: "pix",
		Items: []OrderLineRequest{
			{ProductVariantID: f.ssd.ID, Quantity: 2},
			{ProductVariantID: f.ram.ID, Quantity: 1},
		},
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestCreateOrderPricesFromVariantsAndPersistsAtomically(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)

	summary, err := svc.CreateOrder(context.Background(), f.userID, f.request())
	require.NoError(t, err)

	assert.Regexp(t, pkgcheckout.OrderNumberPattern, summary.OrderNumber)
	assert.Equal(t, 92500, summary.Subtotal)
	assert.Equal(t, 1000, summary.Shipping)
	assert.Equal(t, 0, summary.Discount)
	assert.Equal(t, 93500, summary.Total)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, enums.OrderStatusPending, summary.Status)
	assert.Equal(t, enums.PaymentStatusPending, summary.PaymentStatus)

	var items []models.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", summary.ID).Order("unit_price DESC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 45000, items[0].UnitPrice)
	assert.Equal(t, 90000, items[0].TotalPrice)
	assert.Equal(t, "SSD NVMe", items[0].ProductName)
	assert.Equal(t, "1TB", items[0].VariantName)
	assert.Equal(t, "https://cdn.example.com/ssd.png", items[0].ProductImage)

	assert.Equal(t, float64(1), counterValue(t, f.reg, "checkout_orders_created_total"))
}

func TestOrderItemPriceSurvivesVariantEdit(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)
	summary, err := svc.CreateOrder(context.Background(), f.userID, f.request())
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.ProductVariant{}).Where("id = ?", f.ssd.ID).Update("price_in_cents", 99999).Error)

	var item models.OrderItem
	require.NoError(t, f.db.Where("order_id = ? AND product_variant_id = ?", summary.ID, f.ssd.ID).First(&item).Error)
	assert.Equal(t, 45000, item.UnitPrice)

	var order models.Order
	require.NoError(t, f.db.Where("id = ?", summary.ID).First(&order).Error)
	assert.Equal(t, 93500, order.Total)
}

func TestDiscountIsClampedToZeroTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)
	req := f.request()
	req.Shipping = intPtr(0)
	req.Discount = intPtr(1_000_000)

	summary, err := svc.CreateOrder(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, summary.Subtotal, summary.Discount)
}

func TestCreateOrderValidationHappensBeforeWrites(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)

	cases := map[string]func(*CreateOrderRequest){
		"unknown payment method": func(r *CreateOrderRequest) { r.PaymentMethod = "bitcoin" },
		"no items":               func(r *CreateOrderRequest) { r.Items = nil },
		"zero quantity":          func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
		"oversized quantity":     func(r *CreateOrderRequest) { r.Items[0].Quantity = 4_000_000_000_000_000 },
		"negative shipping":      func(r *CreateOrderRequest) { r.Shipping = intPtr(-1) },
		"negative discount":      func(r *CreateOrderRequest) { r.Discount = intPtr(-1) },
		"foreign address":        func(r *CreateOrderRequest) { r.AddressID = uuid.New() },
		"unknown variant":        func(r *CreateOrderRequest) { r.Items[1].ProductVariantID = uuid.New() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := f.request()
			mutate(&req)
			_, err := svc.CreateOrder(context.Background(), f.userID, req)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, float64(len(cases)), counterValue(t, f.reg, "checkout_failures_total"))
}

func TestCreateOrderRejectsTotalsBeyondMoneyColumns(t *testing.T) {
	f := newFixture(t)
	pricey := models.ProductVariant{ID: uuid.New(), ProductID: f.ssd.ProductID, Name: "8TB", Slug: "8tb-preto", Color: "Preto", PriceInCents: 300000, ImageURL: "https://cdn.example.com/ssd8.png"}
	require.NoError(t, f.db.Omit("Product").Create(&pricey).Error)
	svc := f.service(t)

	req := f.request()
	req.Items = []OrderLineRequest{{ProductVariantID: pricey.ID, Quantity: pkgcheckout.MaxQuantity}}
	_, err := svc.CreateOrder(context.Background(), f.userID, req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, 400, pkgerrors.MetadataFor(typed.Code()).HTTPStatus)

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRetriesOnOrderNumberCollision(t *testing.T) {
	f := newFixture(t)
	taken := "ORD-123456-1111"
	require.NoError(t, f.db.Omit("User", "Address", "Items").Create(&models.Order{
		ID: uuid.New(), OrderNumber: taken, UserID: f.userID, AddressID: f.address.ID,
		Status: enums.OrderStatusPending, PaymentMethod: enums.PaymentMethodPix, PaymentStatus: enums.PaymentStatusPending,
	}).Error)

	calls := 0
	f.numberFn = func(time.Time) (string, error) {
		calls++
		if calls == 1 {
			return taken, nil
		}
		return fmt.Sprintf("ORD-123456-%04d", 2000+calls), nil
	}
	svc := f.service(t)

	summary, err := svc.CreateOrder(context.Background(), f.userID, f.request())
	require.NoError(t, err)
	assert.Equal(t, "ORD-123456-2002", summary.OrderNumber)
	assert.Equal(t, 2, calls)
	assert.Equal(t, float64(1), counterValue(t, f.reg, "checkout_order_number_collisions_total"))

	var items int64
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Equal(t, int64(2), items)
}

func TestCreateOrderGivesUpAfterConfiguredAttempts(t *testing.T) {
	f := newFixture(t)
	taken := "ORD-000001-1000"
	require.NoError(t, f.db.Omit("User", "Address", "Items").Create(&models.Order{
		ID: uuid.New(), OrderNumber: taken, UserID: f.userID, AddressID: f.address.ID,
		Status: enums.OrderStatusPending, PaymentMethod: enums.PaymentMethodPix, PaymentStatus: enums.PaymentStatusPending,
	}).Error)
	calls := 0
	f.numberFn = func(time.Time) (string, error) {
		calls++
		return taken, nil
	}
	svc := f.service(t)

	_, err := svc.CreateOrder(context.Background(), f.userID, f.request())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Equal(t, 3, calls)
}
