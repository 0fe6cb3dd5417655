package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/categories"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const relatedDefaultLimit = 4

type productPage struct {
	Products []products.ProductSummaryDTO `json:"products"`
	Filters  *products.ListFacets         `json:"filters,omitempty"`
}

func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), validators.ParseQueryBool(r, "withProductCount"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CategoryGet(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryProducts lists the products of one category, 404 when the slug is unknown.
func CategoryProducts(categorySvc categories.Service, productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := categorySvc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, page, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.CategorySlug = category.Slug

		result, err := productSvc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, productPage{Products: result.Products, Filters: result.Filters}, result.Pagination)
	}
}

func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, page, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, productPage{Products: result.Products, Filters: result.Filters}, result.Pagination)
	}
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductGetBySlug(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductRelated(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", relatedDefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		related, err := svc.Related(r.Context(), id, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}

func parseProductQuery(r *http.Request) (products.ListFilters, pagination.Params, error) {
	q := r.URL.Query()
	page, err := validators.ParsePagination(r, pagination.DefaultLimit)
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}
	minPrice, err := validators.ParseQueryIntPtr(r, "minPrice", 0, math.MaxInt32)
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}
	maxPrice, err := validators.ParseQueryIntPtr(r, "maxPrice", 0, math.MaxInt32)
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}

	filters := products.ListFilters{
		CategorySlug: strings.TrimSpace(q.Get("category")),
		Search:       validators.SanitizeString(q.Get("search"), 200),
		Brands:       products.SplitList(q.Get("brand")),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Capacities:   products.SplitList(q.Get("capacity")),
		MemoryTypes:  products.SplitList(q.Get("memoryType")),
		Sort:         strings.TrimSpace(q.Get("sort")),
	}
	return filters, page, nil
}
