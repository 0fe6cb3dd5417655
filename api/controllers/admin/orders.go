package admin

import (
	"math"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/analytics"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r, pagination.DefaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		minTotal, err := validators.ParseQueryIntPtr(r, "minTotal", 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxTotal, err := validators.ParseQueryIntPtr(r, "maxTotal", 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		query := orders.AdminListQuery{
			Status:        strings.TrimSpace(q.Get("status")),
			PaymentStatus: strings.TrimSpace(q.Get("paymentStatus")),
			StartDate:     strings.TrimSpace(q.Get("startDate")),
			EndDate:       strings.TrimSpace(q.Get("endDate")),
			MinTotal:      minTotal,
			MaxTotal:      maxTotal,
			Search:        validators.SanitizeString(q.Get("search"), 64),
			SortBy:        strings.TrimSpace(q.Get("sortBy")),
		}

		result, err := svc.AdminList(r.Context(), query, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, result.Orders, result.Pagination)
	}
}

func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.AdminGet(r.Context(), id)
		respond(w, r, logg, http.StatusOK, order, err)
	}
}

func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body orders.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UpdateStatus(r.Context(), id, body)
		respond(w, r, logg, http.StatusOK, order, err)
	}
}

func OrderStatsSummary(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.OrderStatsSummary(r.Context(), r.URL.Query().Get("period"))
		respond(w, r, logg, http.StatusOK, summary, err)
	}
}

func OrderStatsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.OrderStatsDashboard(r.Context())
		respond(w, r, logg, http.StatusOK, stats, err)
	}
}

func Dashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := svc.Dashboard(r.Context())
		respond(w, r, logg, http.StatusOK, dashboard, err)
	}
}

func DashboardAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Analytics(r.Context(), r.URL.Query().Get("period"))
		respond(w, r, logg, http.StatusOK, report, err)
	}
}
