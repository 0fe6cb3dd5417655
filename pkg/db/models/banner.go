package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

type Banner struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string               `gorm:"column:title;not null"`
	ImageURL  string               `gorm:"column:image_url;not null"`
	Link      *string              `gorm:"column:link"`
	Position  enums.BannerPosition `gorm:"column:position;not null"`
	Active    bool                 `gorm:"column:active;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
