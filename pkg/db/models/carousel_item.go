package models

import (
	"time"

	"github.com/google/uuid"
)

// CarouselItem is a home slider slide. Position runs 1..N without gaps.
type CarouselItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description *string   `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url;not null"`
	Link        *string   `gorm:"column:link"`
	Position    int       `gorm:"column:position;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
