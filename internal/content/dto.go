package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// MaxCarouselItems caps the home slider.
const MaxCarouselItems = 4

type BannerDTO struct {
	ID        uuid.UUID            `json:"id"`
	Title     string               `json:"title"`
	ImageURL  string               `json:"imageUrl"`
	Link      *string              `json:"link"`
	Position  enums.BannerPosition `json:"position"`
	Active    bool                 `json:"active"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// CreateBannerRequest defaults position to home-top and active to true.
type CreateBannerRequest struct {
	Title    string  `json:"title" validate:"max=200"`
	ImageURL string  `json:"imageUrl" validate:"required,url"`
	Link     *string `json:"link" validate:"omitempty,max=500"`
	Position *string `json:"position"`
	Active   *bool   `json:"active"`
}

type UpdateBannerRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	Link     *string `json:"link" validate:"omitempty,max=500"`
	Position *string `json:"position"`
	Active   *bool   `json:"active"`
}

type CarouselItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Link        *string   `json:"link"`
	Position    int       `json:"order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateCarouselItemRequest struct {
	Title       string  `json:"title" validate:"max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string  `json:"imageUrl" validate:"required,url"`
	Link        *string `json:"link" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

// UpdateCarouselItemRequest cannot move an item; use reorder for that.
type UpdateCarouselItemRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	Link        *string `json:"link" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

// ReorderCarouselRequest lists every carousel item in its new order.
type ReorderCarouselRequest struct {
	ItemIDs []uuid.UUID `json:"itemIds"`
}

type ContactInfoDTO struct {
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Whatsapp      *string   `json:"whatsapp"`
	Instagram     *string   `json:"instagram"`
	Facebook      *string   `json:"facebook"`
	Twitter       *string   `json:"twitter"`
	Address       *string   `json:"address"`
	BusinessHours *string   `json:"businessHours"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UpdateContactRequest overwrites only the fields present.
type UpdateContactRequest struct {
	Phone         *string `json:"phone" validate:"omitempty,max=40"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Whatsapp      *string `json:"whatsapp" validate:"omitempty,max=40"`
	Instagram     *string `json:"instagram" validate:"omitempty,max=200"`
	Facebook      *string `json:"facebook" validate:"omitempty,max=200"`
	Twitter       *string `json:"twitter" validate:"omitempty,max=200"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	BusinessHours *string `json:"businessHours" validate:"omitempty,max=500"`
}

func (r UpdateContactRequest) fields() map[string]any {
	fields := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = nullable(*v)
		}
	}
	set("phone", r.Phone)
	set("email", r.Email)
	set("whatsapp", r.Whatsapp)
	set("instagram", r.Instagram)
	set("facebook", r.Facebook)
	set("twitter", r.Twitter)
	set("address", r.Address)
	set("business_hours", r.BusinessHours)
	return fields
}

func newBannerDTO(b *models.Banner) *BannerDTO {
	return &BannerDTO{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		Link:      b.Link,
		Position:  b.Position,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func newCarouselItemDTO(c *models.CarouselItem) *CarouselItemDTO {
	return &CarouselItemDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Link:        c.Link,
		Position:    c.Position,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newContactInfoDTO(c *models.ContactInfo) *ContactInfoDTO {
	if c == nil {
		return &ContactInfoDTO{}
	}
	return &ContactInfoDTO{
		Phone:         c.Phone,
		Email:         c.Email,
		Whatsapp:      c.Whatsapp,
		Instagram:     c.Instagram,
		Facebook:      c.Facebook,
		Twitter:       c.Twitter,
		Address:       c.Address,
		BusinessHours: c.BusinessHours,
		UpdatedAt:     c.UpdatedAt,
	}
}
