package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// PriceRange is the min/max variant price of a product, in cents.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CategoryRef is the category embedded in product payloads.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductSummaryDTO is a list item in catalog responses.
type ProductSummaryDTO struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Brand        *string      `json:"brand"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	CategoryID   uuid.UUID    `json:"categoryId"`
	Category     *CategoryRef `json:"category,omitempty"`
	PriceRange   PriceRange   `json:"priceRange"`
	VariantCount int          `json:"variantCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ProductDetailDTO adds the variants, cheapest first.
type ProductDetailDTO struct {
	ProductSummaryDTO
	Variants []VariantDTO `json:"variants"`
}

type VariantDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Color        string    `json:"color"`
	PriceInCents int       `json:"priceInCents"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BrandFacet counts products per brand. Brand is nil for unbranded products.
type BrandFacet struct {
	Brand *string `json:"brand"`
	Count int64   `json:"count"`
}

// ListFacets accompanies the public product list.
type ListFacets struct {
	Brands     []BrandFacet `json:"brands"`
	PriceRange PriceRange   `json:"priceRange"`
}

// ListResult is a page of products plus facets.
type ListResult struct {
	Products   []ProductSummaryDTO `json:"products"`
	Filters    *ListFacets         `json:"filters,omitempty"`
	Pagination types.Pagination    `json:"pagination"`
}

// CreateProductRequest is the admin create body.
type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"required"`
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	Brand       *string   `json:"brand" validate:"omitempty,max=120"`
}

// UpdateProductRequest is a partial admin update.
type UpdateProductRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Brand       *string    `json:"brand" validate:"omitempty,max=120"`
}

// CreateVariantRequest is the admin variant create body.
type CreateVariantRequest struct {
	Name         string `json:"name" validate:"required"`
	Color        string `json:"color" validate:"required"`
	PriceInCents int    `json:"priceInCents" validate:"required"`
	ImageURL     string `json:"imageUrl" validate:"required"`
}

// UpdateVariantRequest is a partial admin variant update.
type UpdateVariantRequest struct {
	Name         *string `json:"name"`
	Color        *string `json:"color"`
	PriceInCents *int    `json:"priceInCents"`
	ImageURL     *string `json:"imageUrl"`
}

func priceRange(variants []models.ProductVariant) PriceRange {
	if len(variants) == 0 {
		return PriceRange{}
	}
	pr := PriceRange{Min: variants[0].PriceInCents, Max: variants[0].PriceInCents}
	for _, v := range variants[1:] {
		if v.PriceInCents < pr.Min {
			pr.Min = v.PriceInCents
		}
		if v.PriceInCents > pr.Max {
			pr.Max = v.PriceInCents
		}
	}
	return pr
}

// NewSummaryDTO maps a product with its variants preloaded.
func NewSummaryDTO(p *models.Product) ProductSummaryDTO {
	dto := ProductSummaryDTO{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Slug:         p.Slug,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		PriceRange:   priceRange(p.Variants),
		VariantCount: len(p.Variants),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		dto.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return dto
}

func NewDetailDTO(p *models.Product) *ProductDetailDTO {
	variants := make([]VariantDTO, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, NewVariantDTO(&p.Variants[i]))
	}
	return &ProductDetailDTO{ProductSummaryDTO: NewSummaryDTO(p), Variants: variants}
}

func NewVariantDTO(v *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:           v.ID,
		ProductID:    v.ProductID,
		Name:         v.Name,
		Slug:         v.Slug,
		Color:        v.Color,
		PriceInCents: v.PriceInCents,
		ImageURL:     v.ImageURL,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func summaries(list []models.Product) []ProductSummaryDTO {
	out := make([]ProductSummaryDTO, 0, len(list))
	for i := range list {
		out = append(out, NewSummaryDTO(&list[i]))
	}
	return out
}
