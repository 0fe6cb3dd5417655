package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type fixture struct {
	db      *gorm.DB
	svc     Service
	user    models.User
	address models.Address
	seq     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)

	f := &fixture{db: conn, svc: svc}
	f.user = f.seedUser(t, "ana@example.com")
	f.address = f.seedAddress(t, f.user.ID)
	return f
}

func (f *fixture) seedUser(t *testing.T, email string) models.User {
	t.Helper()
	u := models.User{ID: uuid.New(), Name: "Ana", Email: email, Role: enums.UserRoleUser, PasswordHash: "x"}
	require.NoError(t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) seedAddress(t *testing.T, userID uuid.UUID) models.Address {
	t.Helper()
	a := models.Address{
		ID: uuid.New(), UserID: userID, Street: "Rua A", Number: "1", Neighborhood: "Centro",
		City: "Recife", State: "PE", ZipCode: "50000-000", Country: "Brasil", Type: enums.AddressTypeHome, IsDefault: true,
	}
	require.NoError(t, f.db.Create(&a).Error)
	return a
}

func (f *fixture) seedOrder(t *testing.T, userID, addressID uuid.UUID, status enums.OrderStatus, total int, createdAt time.Time, lines int) models.Order {
	t.Helper()
	f.seq++
	o := models.Order{
		ID:            uuid.New(),
		OrderNumber:   fmt.Sprintf("ORD-000000-%04d", 1000+f.seq),
		UserID:        userID,
		AddressID:     addressID,
		Status:        status,
		PaymentMethod: enums.PaymentMethodPix,
		PaymentStatus: enums.PaymentStatusPending,
		Subtotal:      total,
		Total:         total,
		CreatedAt:     createdAt,
	}
	require.NoError(t, f.db.Omit("User", "Address", "Items").Create(&o).Error)
	for i := 0; i < lines; i++ {
		item := models.OrderItem{
			ID: uuid.New(), OrderID: o.ID, ProductName: "SSD", ProductImage: "img", VariantName: "1TB",
			Color: "Preto", Quantity: 1, UnitPrice: total / lines, TotalPrice: total / lines,
		}
		require.NoError(t, f.db.Create(&item).Error)
	}
	return o
}

func TestListForUserScopesAndCountsItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	older := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusDelivered, 5000, now.Add(-2*time.Hour), 1)
	newer := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusPending, 9000, now.Add(-time.Hour), 3)
	other := f.seedUser(t, "bob@example.com")
	f.seedOrder(t, other.ID, f.seedAddress(t, other.ID).ID, enums.OrderStatusPending, 100, now, 1)

	res, err := f.svc.ListForUser(ctx, f.user.ID, "", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, newer.ID, res.Orders[0].ID)
	assert.Equal(t, int64(3), res.Orders[0].ItemCount)
	assert.Equal(t, older.ID, res.Orders[1].ID)
	assert.Equal(t, int64(2), res.Pagination.Total)
	assert.Equal(t, pagination.DefaultLimit, res.Pagination.Limit)
	assert.Nil(t, res.Orders[0].User)

	res, err = f.svc.ListForUser(ctx, f.user.ID, "delivered", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, older.ID, res.Orders[0].ID)

	_, err = f.svc.ListForUser(ctx, f.user.ID, "lost", pagination.Params{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestGetForUserHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusPending, 4500, time.Now().UTC(), 2)

	detail, err := f.svc.GetForUser(ctx, f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, detail.OrderNumber)
	assert.Len(t, detail.Items, 2)
	require.NotNil(t, detail.Address)
	assert.Equal(t, "Recife", detail.Address.City)

	_, err = f.svc.GetForUser(ctx, uuid.New(), order.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestCancel(t *testing.T) {
	cases := []struct {
		status enums.OrderStatus
		ok     bool
	}{
		{enums.OrderStatusPending, true},
		{enums.OrderStatusProcessing, true},
		{enums.OrderStatusShipped, false},
		{enums.OrderStatusDelivered, false},
		{enums.OrderStatusCancelled, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			f := newFixture(t)
			order := f.seedOrder(t, f.user.ID, f.address.ID, tc.status, 1000, time.Now().UTC(), 1)

			detail, err := f.svc.Cancel(context.Background(), f.user.ID, order.ID)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, enums.OrderStatusCancelled, detail.Status)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeStateConflict))

			var stored models.Order
			require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
			assert.Equal(t, tc.status, stored.Status)
		})
	}
}

func TestCancelUnknownOrder(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusPending, 1000, time.Now().UTC(), 1)

	_, err := f.svc.Cancel(context.Background(), uuid.New(), order.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestAdminListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusPending, 1000, day.AddDate(0, 0, -5), 1)
	b := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusShipped, 7000, day, 1)
	c := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusDelivered, 3000, day.AddDate(0, 0, 2), 2)

	res, err := f.svc.AdminList(ctx, AdminListQuery{Status: "pending, shipped"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	require.NotNil(t, res.Orders[0].User)
	assert.Equal(t, "ana@example.com", res.Orders[0].User.Email)
	require.NotNil(t, res.Orders[0].Address)

	res, err = f.svc.AdminList(ctx, AdminListQuery{StartDate: "2026-03-10", EndDate: "2026-03-10"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, b.ID, res.Orders[0].ID)

	minTotal := 2000
	res, err = f.svc.AdminList(ctx, AdminListQuery{MinTotal: &minTotal, SortBy: SortTotalAsc}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, c.ID, res.Orders[0].ID)
	assert.Equal(t, b.ID, res.Orders[1].ID)

	res, err = f.svc.AdminList(ctx, AdminListQuery{Search: a.OrderNumber[len(a.OrderNumber)-4:]}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, a.ID, res.Orders[0].ID)
}

func TestAdminListRejectsBadFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, q := range map[string]AdminListQuery{
		"status":        {Status: "pending,unknown"},
		"paymentStatus": {PaymentStatus: "owed"},
		"startDate":     {StartDate: "10/03/2026"},
		"range":         {StartDate: "2026-03-10", EndDate: "2026-03-01"},
		"sortBy":        {SortBy: "name_asc"},
	} {
		_, err := f.svc.AdminList(ctx, q, pagination.Params{})
		assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), name)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusProcessing, 1000, time.Now().UTC(), 1)

	_, err := f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: strPtr("delivered")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeStateConflict))

	detail, err := f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{
		Status:            strPtr("shipped"),
		PaymentStatus:     strPtr("paid"),
		TrackingCode:      strPtr("BR123"),
		EstimatedDelivery: strPtr("2026-04-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, detail.Status)
	assert.Equal(t, enums.PaymentStatusPaid, detail.PaymentStatus)
	require.NotNil(t, detail.TrackingCode)
	assert.Equal(t, "BR123", *detail.TrackingCode)
	require.NotNil(t, detail.EstimatedDelivery)
	assert.Equal(t, 2026, detail.EstimatedDelivery.Year())
	require.NotNil(t, detail.User)

	detail, err = f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: strPtr("delivered"), TrackingCode: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, detail.Status)
	assert.Nil(t, detail.TrackingCode)

	_, err = f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: strPtr("cancelled")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeStateConflict))
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, f.user.ID, f.address.ID, enums.OrderStatusPending, 1000, time.Now().UTC(), 1)

	_, err := f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: strPtr("lost")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = f.svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{EstimatedDelivery: strPtr("soon")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), UpdateStatusRequest{Status: strPtr("processing")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestParseDate(t *testing.T) {
	at, dateOnly, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), at)

	at, dateOnly, err = ParseDate("2026-03-10T15:04:05-03:00")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, 18, at.Hour())

	_, _, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func strPtr(v string) *string { return &v }
