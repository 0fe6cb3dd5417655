package address

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

const defaultCountry = "Brasil"

// AddressDTO is the JSON shape of a saved address.
type AddressDTO struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"userId"`
	Street       string            `json:"street"`
	Number       string            `json:"number"`
	Complement   *string           `json:"complement"`
	Neighborhood string            `json:"neighborhood"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	ZipCode      string            `json:"zipCode"`
	Country      string            `json:"country"`
	Type         enums.AddressType `json:"type"`
	IsDefault    bool              `json:"isDefault"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CreateAddressRequest is the body of POST /api/addresses.
type CreateAddressRequest struct {
	Street       string  `json:"street" validate:"required"`
	Number       string  `json:"number" validate:"required"`
	Complement   *string `json:"complement"`
	Neighborhood string  `json:"neighborhood" validate:"required"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	ZipCode      string  `json:"zipCode" validate:"required"`
	Country      string  `json:"country"`
	Type         string  `json:"type"`
	IsDefault    bool    `json:"isDefault"`
}

// UpdateAddressRequest is a partial update; nil fields are untouched.
type UpdateAddressRequest struct {
	Street       *string `json:"street" validate:"omitempty,min=1"`
	Number       *string `json:"number" validate:"omitempty,min=1"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,min=1"`
	City         *string `json:"city" validate:"omitempty,min=1"`
	State        *string `json:"state" validate:"omitempty,min=1"`
	ZipCode      *string `json:"zipCode" validate:"omitempty,min=1"`
	Country      *string `json:"country" validate:"omitempty,min=1"`
	Type         *string `json:"type"`
	IsDefault    *bool   `json:"isDefault"`
}

func (r UpdateAddressRequest) fields() (map[string]any, error) {
	out := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			out[column] = *v
		}
	}
	setString("street", r.Street)
	setString("number", r.Number)
	setString("neighborhood", r.Neighborhood)
	setString("city", r.City)
	setString("state", r.State)
	setString("zip_code", r.ZipCode)
	setString("country", r.Country)
	if r.Complement != nil {
		if *r.Complement == "" {
			out["complement"] = nil
		} else {
			out["complement"] = *r.Complement
		}
	}
	if r.Type != nil {
		t, err := enums.ParseAddressType(*r.Type)
		if err != nil {
			return nil, err
		}
		out["type"] = t
	}
	if r.IsDefault != nil {
		out["is_default"] = *r.IsDefault
	}
	return out, nil
}

func (r CreateAddressRequest) toModel(userID uuid.UUID, addressType enums.AddressType) *models.Address {
	country := r.Country
	if country == "" {
		country = defaultCountry
	}
	var complement *string
	if r.Complement != nil && *r.Complement != "" {
		c := *r.Complement
		complement = &c
	}
	return &models.Address{
		ID:           uuid.New(),
		UserID:       userID,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Country:      country,
		Type:         addressType,
		IsDefault:    r.IsDefault,
	}
}

func FromModel(a *models.Address) *AddressDTO {
	if a == nil {
		return nil
	}
	return &AddressDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		Country:      a.Country,
		Type:         a.Type,
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func FromModels(list []models.Address) []AddressDTO {
	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
