package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Service manages storefront content: banners, the home carousel and the
// contact block.
type Service interface {
	ActiveBanners(ctx context.Context) ([]BannerDTO, error)
	ActiveBannersAt(ctx context.Context, position string) ([]BannerDTO, error)
	ListBanners(ctx context.Context) ([]BannerDTO, error)
	CreateBanner(ctx context.Context, req CreateBannerRequest) (*BannerDTO, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, req UpdateBannerRequest) (*BannerDTO, error)
	ToggleBanner(ctx context.Context, id uuid.UUID) (*BannerDTO, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error

	ActiveCarousel(ctx context.Context) ([]CarouselItemDTO, error)
	ListCarousel(ctx context.Context) ([]CarouselItemDTO, error)
	CreateCarouselItem(ctx context.Context, req CreateCarouselItemRequest) (*CarouselItemDTO, error)
	UpdateCarouselItem(ctx context.Context, id uuid.UUID, req UpdateCarouselItemRequest) (*CarouselItemDTO, error)
	ToggleCarouselItem(ctx context.Context, id uuid.UUID) (*CarouselItemDTO, error)
	ReorderCarousel(ctx context.Context, req ReorderCarouselRequest) ([]CarouselItemDTO, error)
	DeleteCarouselItem(ctx context.Context, id uuid.UUID) error

	Contact(ctx context.Context) (*ContactInfoDTO, error)
	UpdateContact(ctx context.Context, req UpdateContactRequest) (*ContactInfoDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func nullable(v string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return v
}

func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func fieldError(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"field": field})
}

func parsePosition(raw string) (enums.BannerPosition, error) {
	p, err := enums.ParseBannerPosition(strings.TrimSpace(raw))
	if err != nil {
		return "", fieldError("position", "position must be one of home-top, home-middle, sidebar, bottom")
	}
	return p, nil
}

func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, what+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load "+what)
}
