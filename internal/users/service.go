package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const adminListDefaultLimit = 50

// Service covers the signed-in profile and admin user management.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	List(ctx context.Context, page pagination.Params) ([]UserDTO, types.Pagination, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role string) (*UserDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*models.User, error)
	List(ctx context.Context, page pagination.Params) ([]models.User, int64, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	fields := map[string]any{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Image != nil && strings.TrimSpace(*req.Image) != "" {
		fields["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			fields["phone"] = nil
		} else {
			fields["phone"] = phone
		}
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	user, err := s.repo.UpdateFields(ctx, userID, fields)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "phone or email already in use")
		}
		return nil, mapLookupError(err)
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]UserDTO, types.Pagination, error) {
	page = page.Normalize(adminListDefaultLimit)
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(rows), pagination.Build(total, page), nil
}

func (s *service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, raw string) (*UserDTO, error) {
	role, err := enums.ParseUserRole(strings.TrimSpace(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role, use user, moderator or admin")
	}
	if actorID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot change your own role")
	}
	user, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(user), nil
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "user lookup")
}
