package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func (s *service) ActiveCarousel(ctx context.Context) ([]CarouselItemDTO, error) {
	return s.listCarousel(ctx, true)
}

func (s *service) ListCarousel(ctx context.Context) ([]CarouselItemDTO, error) {
	return s.listCarousel(ctx, false)
}

func (s *service) listCarousel(ctx context.Context, activeOnly bool) ([]CarouselItemDTO, error) {
	rows, err := s.repo.ListCarousel(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carousel")
	}
	return carouselDTOs(rows), nil
}

// CreateCarouselItem appends the item at position count+1.
func (s *service) CreateCarouselItem(ctx context.Context, req CreateCarouselItemRequest) (*CarouselItemDTO, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, fieldError("imageUrl", "imageUrl is required")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	item := &models.CarouselItem{
		Title:       strings.TrimSpace(req.Title),
		Description: optionalString(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Link:        optionalString(req.Link),
		Active:      active,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.CountCarousel(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count carousel")
		}
		if count >= MaxCarouselItems {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("carousel already has the maximum of %d items", MaxCarouselItems))
		}
		item.Position = int(count) + 1
		if err := repo.CreateCarouselItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create carousel item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newCarouselItemDTO(item), nil
}

func (s *service) UpdateCarouselItem(ctx context.Context, id uuid.UUID, req UpdateCarouselItemRequest) (*CarouselItemDTO, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = nullable(*req.Description)
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
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateCarouselItem(ctx, id, fields); err != nil {
		return nil, lookupError(err, "carousel item")
	}
	return s.reloadCarouselItem(ctx, id)
}

func (s *service) ToggleCarouselItem(ctx context.Context, id uuid.UUID) (*CarouselItemDTO, error) {
	if err := s.repo.ToggleCarouselItem(ctx, id); err != nil {
		return nil, lookupError(err, "carousel item")
	}
	return s.reloadCarouselItem(ctx, id)
}

// ReorderCarousel assigns positions 1..N following req.ItemIDs, which must
// name every carousel item exactly once.
func (s *service) ReorderCarousel(ctx context.Context, req ReorderCarouselRequest) ([]CarouselItemDTO, error) {
	if len(req.ItemIDs) == 0 {
		return nil, fieldError("itemIds", "itemIds must be a non-empty array")
	}
	seen := make(map[uuid.UUID]struct{}, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		if _, dup := seen[id]; dup {
			return nil, fieldError("itemIds", fmt.Sprintf("item %s listed twice", id))
		}
		seen[id] = struct{}{}
	}

	var out []models.CarouselItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.ListCarousel(ctx, false)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carousel")
		}
		if len(current) != len(req.ItemIDs) {
			return fieldError("itemIds", "itemIds must list every carousel item")
		}
		for _, item := range current {
			if _, ok := seen[item.ID]; !ok {
				return fieldError("itemIds", "some carousel items were not found")
			}
		}
		for i, id := range req.ItemIDs {
			if err := repo.SetCarouselPosition(ctx, id, i+1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reorder carousel")
			}
		}
		out, err = repo.ListCarousel(ctx, false)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carousel")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return carouselDTOs(out), nil
}

// DeleteCarouselItem removes the item and closes the gap it leaves.
func (s *service) DeleteCarouselItem(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteCarouselItem(ctx, id); err != nil {
			return lookupError(err, "carousel item")
		}
		remaining, err := repo.ListCarousel(ctx, false)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carousel")
		}
		for i, item := range remaining {
			if item.Position == i+1 {
				continue
			}
			if err := repo.SetCarouselPosition(ctx, item.ID, i+1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "renumber carousel")
			}
		}
		return nil
	})
}

func (s *service) reloadCarouselItem(ctx context.Context, id uuid.UUID) (*CarouselItemDTO, error) {
	item, err := s.repo.FindCarouselItem(ctx, id)
	if err != nil {
		return nil, lookupError(err, "carousel item")
	}
	return newCarouselItemDTO(item), nil
}

func carouselDTOs(rows []models.CarouselItem) []CarouselItemDTO {
	out := make([]CarouselItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *newCarouselItemDTO(&rows[i]))
	}
	return out
}
