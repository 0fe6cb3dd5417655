package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
)

// Service exposes the public catalog and the admin product/variant management.
type Service interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDetailDTO, error)
	Related(ctx context.Context, id uuid.UUID, limit int) ([]ProductSummaryDTO, error)

	AdminList(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDetailDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDetailDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateVariant(ctx context.Context, productID uuid.UUID, req CreateVariantRequest) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, req UpdateVariantRequest) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	result, err := s.list(ctx, filters, page.Normalize(pagination.DefaultLimit))
	if err != nil {
		return nil, err
	}

	brands, err := s.repo.BrandFacets(ctx, brandFacetLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list brand facets")
	}
	priceRange, err := s.repo.GlobalPriceRange(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load price range")
	}
	result.Filters = &ListFacets{Brands: brands, PriceRange: priceRange}
	return result, nil
}

func (s *service) AdminList(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	return s.list(ctx, filters, page.Normalize(adminListDefaultLimit))
}

func (s *service) list(ctx context.Context, filters ListFilters, page pagination.Params) (*ListResult, error) {
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice")
	}
	products, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return &ListResult{
		Products:   summaries(products),
		Pagination: pagination.Build(total, page),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	return NewDetailDTO(p), nil
}

func (s *service) GetBySlug(ctx context.Context, value string) (*ProductDetailDTO, error) {
	p, err := s.repo.FindBySlug(ctx, value)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	return NewDetailDTO(p), nil
}

func (s *service) Related(ctx context.Context, id uuid.UUID, limit int) ([]ProductSummaryDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	if limit <= 0 {
		limit = relatedDefaultLimit
	}
	limit = pagination.NormalizeLimit(limit)
	related, err := s.repo.Related(ctx, p.CategoryID, p.ID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list related products")
	}
	return summaries(related), nil
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDetailDTO, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" || req.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, description and categoryId are required")
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	productSlug, err := s.uniqueProductSlug(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        name,
		Slug:        productSlug,
		Description: description,
		Brand:       trimmedOrNil(req.Brand),
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return s.GetByID(ctx, p.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDetailDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		if name != existing.Name {
			productSlug, err := s.uniqueProductSlug(ctx, name, id)
			if err != nil {
				return nil, err
			}
			fields["name"] = name
			fields["slug"] = productSlug
		}
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description must not be empty")
		}
		fields["description"] = description
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Brand != nil {
		fields["brand"] = trimmedOrNil(req.Brand)
	}
	if len(fields) == 0 && req.Name == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateProduct(ctx, id, fields); err != nil {
			return nil, mapLookupError(err, "product not found")
		}
	}
	return s.GetByID(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupError(err, "product not found")
	}
	count, err := s.repo.CountVariants(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count variants")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "product has variants; delete them first").
			WithDetails(map[string]int64{"variantCount": count})
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "category not found").
			WithDetails(map[string]string{"field": "categoryId"})
	}
	return nil
}

func (s *service) uniqueProductSlug(ctx context.Context, name string, self uuid.UUID) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name must contain letters or digits")
	}
	out, err := slug.Unique(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ProductSlugTaken(ctx, candidate, self)
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product slug")
	}
	return out, nil
}

func mapLookupError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup catalog record")
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
