package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const dateOnlyLayout = "2006-01-02"

// Service exposes order history for customers and order management for admins.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, status string, page pagination.Params) (*ListResult, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetailDTO, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetailDTO, error)
	AdminList(ctx context.Context, query AdminListQuery, page pagination.Params) (*ListResult, error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (*OrderDetailDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDetailDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the orders service. logg may be nil.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, status string, page pagination.Params) (*ListResult, error) {
	filters := ListFilters{UserID: &userID}
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := enums.ParseOrderStatus(status)
		if err != nil {
			return nil, fieldError("status", err.Error())
		}
		filters.Statuses = []enums.OrderStatus{parsed}
	}
	return s.list(ctx, filters, page)
}

func (s *service) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetailDTO, error) {
	order, err := s.repo.FindDetail(ctx, orderID, &userID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return newDetail(order, false), nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetailDTO, error) {
	cancellable := []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusProcessing}
	updated, err := s.repo.UpdateIfStatus(ctx, orderID, &userID, cancellable, map[string]any{
		"status": enums.OrderStatusCancelled,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
	}

	order, err := s.repo.FindDetail(ctx, orderID, &userID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order cannot be cancelled while %s", order.Status))
	}
	s.logStatusChange(ctx, orderID, "order.cancelled_by_customer")
	return newDetail(order, false), nil
}

func (s *service) AdminList(ctx context.Context, query AdminListQuery, page pagination.Params) (*ListResult, error) {
	filters, err := query.filters()
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filters, page)
}

func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (*OrderDetailDTO, error) {
	order, err := s.repo.FindDetail(ctx, orderID, nil)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return newDetail(order, true), nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDetailDTO, error) {
	updates, next, err := req.updates()
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindDetail(ctx, orderID, nil)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if next != "" && !current.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", current.Status, next))
	}

	// Guard against a concurrent status change between the read and the write.
	updated, err := s.repo.UpdateIfStatus(ctx, orderID, nil, []enums.OrderStatus{current.Status}, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently; retry")
	}

	order, err := s.repo.FindDetail(ctx, orderID, nil)
	if err != nil {
		return nil, mapLookupError(err)
	}
	s.logStatusChange(ctx, orderID, "order.status_updated")
	return newDetail(order, true), nil
}

func (s *service) list(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	page = page.Normalize(pagination.DefaultLimit)
	rows, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, o := range rows {
		ids = append(ids, o.ID)
	}
	counts, err := s.repo.ItemCounts(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count order items")
	}

	out := make([]OrderListItemDTO, 0, len(rows))
	for _, o := range rows {
		out = append(out, newListItem(o, counts[o.ID]))
	}
	return &ListResult{Orders: out, Pagination: pagination.Build(total, page)}, nil
}

func (s *service) logStatusChange(ctx context.Context, orderID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithOrderID(ctx, orderID.String()), msg)
}

func (q AdminListQuery) filters() (ListFilters, error) {
	filters := ListFilters{
		MinTotal:     q.MinTotal,
		MaxTotal:     q.MaxTotal,
		Search:       q.Search,
		WithCustomer: true,
	}

	for _, raw := range splitCSV(q.Status) {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return ListFilters{}, fieldError("status", err.Error())
		}
		filters.Statuses = append(filters.Statuses, status)
	}
	for _, raw := range splitCSV(q.PaymentStatus) {
		status, err := enums.ParsePaymentStatus(raw)
		if err != nil {
			return ListFilters{}, fieldError("paymentStatus", err.Error())
		}
		filters.PaymentStatuses = append(filters.PaymentStatuses, status)
	}

	if q.StartDate != "" {
		from, _, err := ParseDate(q.StartDate)
		if err != nil {
			return ListFilters{}, fieldError("startDate", err.Error())
		}
		filters.From = &from
	}
	if q.EndDate != "" {
		until, dateOnly, err := ParseDate(q.EndDate)
		if err != nil {
			return ListFilters{}, fieldError("endDate", err.Error())
		}
		// A bare date includes the whole day.
		if dateOnly {
			until = until.AddDate(0, 0, 1)
		} else {
			until = until.Add(time.Nanosecond)
		}
		filters.Until = &until
	}
	if filters.From != nil && filters.Until != nil && !filters.From.Before(*filters.Until) {
		return ListFilters{}, fieldError("endDate", "endDate must not precede startDate")
	}
	if q.MinTotal != nil && q.MaxTotal != nil && *q.MinTotal > *q.MaxTotal {
		return ListFilters{}, fieldError("maxTotal", "maxTotal must not be below minTotal")
	}

	switch q.SortBy {
	case "", SortCreatedAtDesc, SortCreatedAtAsc, SortTotalDesc, SortTotalAsc:
		filters.SortBy = q.SortBy
	default:
		return ListFilters{}, fieldError("sortBy", fmt.Sprintf("unsupported sort %q", q.SortBy))
	}
	return filters, nil
}

func (r UpdateStatusRequest) updates() (map[string]any, enums.OrderStatus, error) {
	updates := map[string]any{}
	var next enums.OrderStatus

	if r.Status != nil {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return nil, "", fieldError("status", err.Error())
		}
		next = status
		updates["status"] = status
	}
	if r.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(strings.TrimSpace(*r.PaymentStatus))
		if err != nil {
			return nil, "", fieldError("paymentStatus", err.Error())
		}
		updates["payment_status"] = status
	}
	if r.TrackingCode != nil {
		updates["tracking_code"] = nullableString(*r.TrackingCode)
	}
	if r.Notes != nil {
		updates["notes"] = nullableString(*r.Notes)
	}
	if r.EstimatedDelivery != nil {
		raw := strings.TrimSpace(*r.EstimatedDelivery)
		if raw == "" {
			updates["estimated_delivery"] = nil
		} else {
			at, _, err := ParseDate(raw)
			if err != nil {
				return nil, "", fieldError("estimatedDelivery", err.Error())
			}
			updates["estimated_delivery"] = at
		}
	}

	if len(updates) == 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	return updates, next, nil
}

// ParseDate accepts RFC3339 timestamps or YYYY-MM-DD dates (UTC midnight).
// The boolean reports whether the input was a bare date.
func ParseDate(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nullableString(v string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return v
}

func fieldError(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"field": field})
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
}
