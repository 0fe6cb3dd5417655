package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
)

const minNameLength = 2

// Service serves the public category reads and admin category management.
type Service interface {
	List(ctx context.Context, withProductCount bool) ([]CategoryDTO, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryDTO, error)
	Create(ctx context.Context, req UpsertCategoryRequest) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, withProductCount bool) ([]CategoryDTO, error) {
	rows, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		dto := fromCounted(row)
		if !withProductCount {
			dto.ProductCount = nil
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) GetBySlug(ctx context.Context, value string) (*CategoryDTO, error) {
	c, err := s.repo.FindBySlug(ctx, value)
	if err != nil {
		return nil, mapLookupError(err)
	}
	count, err := s.repo.CountProducts(ctx, c.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category products")
	}
	dto := FromModel(c)
	dto.ProductCount = &count
	return dto, nil
}

func (s *service) Create(ctx context.Context, req UpsertCategoryRequest) (*CategoryDTO, error) {
	name, categorySlug, err := s.prepare(ctx, req, uuid.Nil)
	if err != nil {
		return nil, err
	}
	c := &models.Category{Name: name, Slug: categorySlug}
	if err := s.repo.Create(ctx, c); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, duplicateError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return FromModel(c), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (*CategoryDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	name, categorySlug, err := s.prepare(ctx, req, id)
	if err != nil {
		return nil, err
	}
	existing.Name = name
	existing.Slug = categorySlug
	if err := s.repo.Save(ctx, existing); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, duplicateError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return FromModel(existing), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupError(err)
	}
	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category has products").
			WithDetails(map[string]int64{"productCount": count})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) prepare(ctx context.Context, req UpsertCategoryRequest, self uuid.UUID) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < minNameLength {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "name must have at least 2 characters").
			WithDetails(map[string]string{"field": "name"})
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "name must contain letters or digits").
			WithDetails(map[string]string{"field": "name"})
	}
	taken, err := s.repo.SlugTaken(ctx, categorySlug, self)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category slug")
	}
	if taken {
		return "", "", duplicateError()
	}
	return name, categorySlug, nil
}

func duplicateError() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "a category with a similar name already exists")
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
}
