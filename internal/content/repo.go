package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Repository persists banners, carousel items and the contact row.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListBanners returns banners newest first. An empty position does not filter.
func (r *Repository) ListBanners(ctx context.Context, activeOnly bool, position enums.BannerPosition) ([]models.Banner, error) {
	q := r.db.WithContext(ctx).Model(&models.Banner{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if position != "" {
		q = q.Where("position = ?", position)
	}
	var out []models.Banner
	err := q.Order("created_at DESC").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *Repository) FindBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var b models.Banner
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) CreateBanner(ctx context.Context, b *models.Banner) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *Repository) UpdateBanner(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, r.db, &models.Banner{}, id, fields)
}

// ToggleBanner flips active in a single statement.
func (r *Repository) ToggleBanner(ctx context.Context, id uuid.UUID) error {
	return updateByID(ctx, r.db, &models.Banner{}, id, map[string]any{"active": gorm.Expr("NOT active")})
}

func (r *Repository) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListCarousel(ctx context.Context, activeOnly bool) ([]models.CarouselItem, error) {
	q := r.db.WithContext(ctx).Model(&models.CarouselItem{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []models.CarouselItem
	err := q.Order("position ASC").Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *Repository) CountCarousel(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CarouselItem{}).Count(&n).Error
	return n, err
}

func (r *Repository) FindCarouselItem(ctx context.Context, id uuid.UUID) (*models.CarouselItem, error) {
	var c models.CarouselItem
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateCarouselItem(ctx context.Context, c *models.CarouselItem) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) UpdateCarouselItem(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, r.db, &models.CarouselItem{}, id, fields)
}

func (r *Repository) ToggleCarouselItem(ctx context.Context, id uuid.UUID) error {
	return updateByID(ctx, r.db, &models.CarouselItem{}, id, map[string]any{"active": gorm.Expr("NOT active")})
}

func (r *Repository) SetCarouselPosition(ctx context.Context, id uuid.UUID, position int) error {
	return updateByID(ctx, r.db, &models.CarouselItem{}, id, map[string]any{"position": position})
}

func (r *Repository) DeleteCarouselItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CarouselItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindContact returns nil without error when the row was never written.
func (r *Repository) FindContact(ctx context.Context) (*models.ContactInfo, error) {
	var c models.ContactInfo
	err := r.db.WithContext(ctx).Order("updated_at ASC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateContact(ctx context.Context, c *models.ContactInfo) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) UpdateContact(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, r.db, &models.ContactInfo{}, id, fields)
}

func updateByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, fields map[string]any) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
