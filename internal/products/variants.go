package products

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
)

func (s *service) CreateVariant(ctx context.Context, productID uuid.UUID, req CreateVariantRequest) (*VariantDTO, error) {
	name := strings.TrimSpace(req.Name)
	color := strings.TrimSpace(req.Color)
	imageURL := strings.TrimSpace(req.ImageURL)
	if name == "" || color == "" || imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, color, priceInCents and imageUrl are required")
	}
	if req.PriceInCents <= 0 {
		return nil, priceError()
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, mapLookupError(err, "product not found")
	}

	variantSlug, err := s.uniqueVariantSlug(ctx, name, color, uuid.Nil)
	if err != nil {
		return nil, err
	}
	v := &models.ProductVariant{
		ProductID:    productID,
		Name:         name,
		Slug:         variantSlug,
		Color:        color,
		PriceInCents: req.PriceInCents,
		ImageURL:     imageURL,
	}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create variant")
	}
	dto := NewVariantDTO(v)
	return &dto, nil
}

// UpdateVariant applies a partial update. Changing name or color re-slugs the variant.
func (s *service) UpdateVariant(ctx context.Context, variantID uuid.UUID, req UpdateVariantRequest) (*VariantDTO, error) {
	existing, err := s.repo.FindVariant(ctx, variantID)
	if err != nil {
		return nil, mapLookupError(err, "variant not found")
	}

	fields := map[string]any{}
	name, color := existing.Name, existing.Color
	if req.Name != nil {
		if name = strings.TrimSpace(*req.Name); name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if req.Color != nil {
		if color = strings.TrimSpace(*req.Color); color == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "color must not be empty")
		}
		fields["color"] = color
	}
	if req.PriceInCents != nil {
		if *req.PriceInCents <= 0 {
			return nil, priceError()
		}
		fields["price_in_cents"] = *req.PriceInCents
	}
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if imageURL == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "imageUrl must not be empty")
		}
		fields["image_url"] = imageURL
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if name != existing.Name || color != existing.Color {
		variantSlug, err := s.uniqueVariantSlug(ctx, name, color, variantID)
		if err != nil {
			return nil, err
		}
		fields["slug"] = variantSlug
	}

	if err := s.repo.UpdateVariant(ctx, variantID, fields); err != nil {
		return nil, mapLookupError(err, "variant not found")
	}
	updated, err := s.repo.FindVariant(ctx, variantID)
	if err != nil {
		return nil, mapLookupError(err, "variant not found")
	}
	dto := NewVariantDTO(updated)
	return &dto, nil
}

func (s *service) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	if err := s.repo.DeleteVariant(ctx, variantID); err != nil {
		return mapLookupError(err, "variant not found")
	}
	return nil
}

func (s *service) uniqueVariantSlug(ctx context.Context, name, color string, self uuid.UUID) (string, error) {
	base := slug.Make(name + "-" + color)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name and color must contain letters or digits")
	}
	out, err := slug.Unique(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.VariantSlugTaken(ctx, candidate, self)
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check variant slug")
	}
	return out, nil
}

func priceError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "priceInCents must be greater than zero").
		WithDetails(map[string]string{"field": "priceInCents"})
}
