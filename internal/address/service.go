package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Service manages a user's saved addresses and keeps at most one default.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*AddressDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) (*AddressDTO, error)
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
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*AddressDTO, error) {
	a, err := s.repo.FindForUser(ctx, id, userID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(a), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error) {
	if err := validateRequired(req); err != nil {
		return nil, err
	}
	addressType := enums.AddressTypeHome
	if strings.TrimSpace(req.Type) != "" {
		parsed, err := enums.ParseAddressType(req.Type)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).WithDetails(map[string]string{"field": "type"})
		}
		addressType = parsed
	}

	model := req.toModel(userID, addressType)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.CountByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count addresses")
		}
		if count == 0 {
			model.IsDefault = true
		}
		if model.IsDefault {
			if err := repo.ClearDefaults(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default addresses")
			}
		}
		if err := repo.Create(ctx, model); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(model), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error) {
	fields, err := req.fields()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).WithDetails(map[string]string{"field": "type"})
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var updated *models.Address
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindForUser(ctx, id, userID); err != nil {
			return mapLookupError(err)
		}
		if req.IsDefault != nil && *req.IsDefault {
			if err := repo.ClearDefaults(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default addresses")
			}
		}
		if err := repo.UpdateFields(ctx, id, fields); err != nil {
			return mapLookupError(err)
		}
		a, err := repo.FindForUser(ctx, id, userID)
		if err != nil {
			return mapLookupError(err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// Delete removes an address. Removing the default hands the flag to the
// newest remaining address; removing a sole default address is rejected.
func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindForUser(ctx, id, userID)
		if err != nil {
			return mapLookupError(err)
		}

		var successor *models.Address
		if existing.IsDefault {
			successor, err = repo.LatestOther(ctx, userID, id)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete the only default address")
			}
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup remaining addresses")
			}
		}

		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
		}
		if successor != nil {
			if err := repo.UpdateFields(ctx, successor.ID, map[string]any{"is_default": true}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote default address")
			}
		}
		return nil
	})
}

func (s *service) SetDefault(ctx context.Context, userID, id uuid.UUID) (*AddressDTO, error) {
	isDefault := true
	return s.Update(ctx, userID, id, UpdateAddressRequest{IsDefault: &isDefault})
}

func validateRequired(req CreateAddressRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"street", req.Street},
		{"number", req.Number},
		{"neighborhood", req.Neighborhood},
		{"city", req.City},
		{"state", req.State},
		{"zipCode", req.ZipCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, r.field+" is required").
				WithDetails(map[string]string{"field": r.field})
		}
	}
	return nil
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup address")
}
