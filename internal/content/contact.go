package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Contact returns the contact block, empty when it was never written.
func (s *service) Contact(ctx context.Context) (*ContactInfoDTO, error) {
	c, err := s.repo.FindContact(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load contact info")
	}
	return newContactInfoDTO(c), nil
}

// UpdateContact upserts the single contact row.
func (s *service) UpdateContact(ctx context.Context, req UpdateContactRequest) (*ContactInfoDTO, error) {
	fields := req.fields()
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var out *models.ContactInfo
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindContact(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load contact info")
		}
		if existing == nil {
			existing = &models.ContactInfo{}
			if err := repo.CreateContact(ctx, existing); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact info")
			}
		}
		if err := repo.UpdateContact(ctx, existing.ID, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update contact info")
		}
		out, err = repo.FindContact(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load contact info")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newContactInfoDTO(out), nil
}
