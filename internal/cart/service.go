package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/checkout"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Service manages the signed-in user's cart.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*ItemDTO, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
	now  func() time.Time
}

func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	c, err := s.repo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	loaded, err := s.repo.LoadWithItems(ctx, c.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart items")
	}
	return newCartDTO(loaded), nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*ItemDTO, error) {
	if req.VariantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variantId is required").
			WithDetails(map[string]string{"field": "variantId"})
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 || quantity > checkout.MaxQuantity {
		return nil, quantityError()
	}

	var out ItemDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ok, err := repo.VariantExists(ctx, req.VariantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup variant")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		c, err := repo.FindOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		existing, err := repo.FindItemByVariant(ctx, c.ID, req.VariantID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
		case existing.Quantity+quantity > checkout.MaxQuantity:
			return quantityError()
		}
		item, err := repo.AddQuantity(ctx, c.ID, req.VariantID, quantity, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
		}
		out = newItemDTO(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if req.Quantity < 1 || req.Quantity > checkout.MaxQuantity {
		return nil, quantityError()
	}
	item, err := s.repo.FindItemForUser(ctx, itemID, userID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if err := s.repo.SetQuantity(ctx, item.ID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	item.Quantity = req.Quantity
	dto := newItemDTO(item)
	return &dto, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.repo.FindItemForUser(ctx, itemID, userID)
	if err != nil {
		return mapLookupError(err)
	}
	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func quantityError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between 1 and %d", checkout.MaxQuantity)).
		WithDetails(map[string]string{"field": "quantity"})
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
}
