package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// CategoryDTO is the public category shape. ProductCount is omitted when not requested.
type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount *int64    `json:"productCount,omitempty"`
}

// UpsertCategoryRequest is the admin create/update body.
type UpsertCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type categoryWithCount struct {
	models.Category
	ProductCount int64 `gorm:"column:product_count"`
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}

func fromCounted(c categoryWithCount) CategoryDTO {
	count := c.ProductCount
	dto := FromModel(&c.Category)
	dto.ProductCount = &count
	return *dto
}
