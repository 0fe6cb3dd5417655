package content

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func (s *service) ActiveBanners(ctx context.Context) ([]BannerDTO, error) {
	return s.listBanners(ctx, true, "")
}

func (s *service) ActiveBannersAt(ctx context.Context, position string) ([]BannerDTO, error) {
	if strings.TrimSpace(position) == "" {
		return nil, fieldError("position", "position is required")
	}
	p, err := parsePosition(position)
	if err != nil {
		return nil, err
	}
	return s.listBanners(ctx, true, p)
}

func (s *service) ListBanners(ctx context.Context) ([]BannerDTO, error) {
	return s.listBanners(ctx, false, "")
}

func (s *service) listBanners(ctx context.Context, activeOnly bool, position enums.BannerPosition) ([]BannerDTO, error) {
	rows, err := s.repo.ListBanners(ctx, activeOnly, position)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list banners")
	}
	out := make([]BannerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *newBannerDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateBanner(ctx context.Context, req CreateBannerRequest) (*BannerDTO, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, fieldError("imageUrl", "imageUrl is required")
	}
	position := enums.BannerPositionHomeTop
	if req.Position != nil {
		p, err := parsePosition(*req.Position)
		if err != nil {
			return nil, err
		}
		position = p
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	banner := &models.Banner{
		Title:    strings.TrimSpace(req.Title),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Link:     optionalString(req.Link),
		Position: position,
		Active:   active,
	}
	if err := s.repo.CreateBanner(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create banner")
	}
	return newBannerDTO(banner), nil
}

func (s *service) UpdateBanner(ctx context.Context, id uuid.UUID, req UpdateBannerRequest) (*BannerDTO, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.ImageURL != nil {
		url := strings.TrimSpace(*req.ImageURL)
		if url == "" {
			return nil, fieldError("imageUrl", "imageUrl cannot be empty")
		}
		fields["image_url"] = url
	}
	if req.Link != nil {
		fields["link"] = nullable(*req.Link)
	}
	if req.Position != nil {
		p, err := parsePosition(*req.Position)
		if err != nil {
			return nil, err
		}
		fields["position"] = p
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateBanner(ctx, id, fields); err != nil {
		return nil, lookupError(err, "banner")
	}
	return s.reloadBanner(ctx, id)
}

func (s *service) ToggleBanner(ctx context.Context, id uuid.UUID) (*BannerDTO, error) {
	if err := s.repo.ToggleBanner(ctx, id); err != nil {
		return nil, lookupError(err, "banner")
	}
	return s.reloadBanner(ctx, id)
}

func (s *service) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBanner(ctx, id); err != nil {
		return lookupError(err, "banner")
	}
	return nil
}

func (s *service) reloadBanner(ctx context.Context, id uuid.UUID) (*BannerDTO, error) {
	b, err := s.repo.FindBanner(ctx, id)
	if err != nil {
		return nil, lookupError(err, "banner")
	}
	return newBannerDTO(b), nil
}
