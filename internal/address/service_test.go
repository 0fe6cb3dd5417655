package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.Wrap(conn))
	require.NoError(t, err)
	return svc, repo
}

func sampleRequest(street string) CreateAddressRequest {
	return CreateAddressRequest{
		Street:       street,
		Number:       "100",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01000-000",
	}
}

func countDefaults(t *testing.T, svc Service, userID uuid.UUID) int {
	t.Helper()
	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, a := range list {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestCreateFirstAddressBecomesDefault(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "Brasil", first.Country)
	assert.Equal(t, enums.AddressTypeHome, first.Type)

	second, err := svc.Create(context.Background(), userID, sampleRequest("Rua B"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestCreateDefaultClearsOthers(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)
	req := sampleRequest("Rua B")
	req.IsDefault = true
	second, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, 1, countDefaults(t, svc, userID))
	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCreateRejectsMissingFieldAndBadType(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	req := sampleRequest("")
	_, err := svc.Create(context.Background(), userID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	req = sampleRequest("Rua A")
	req.Type = "boat"
	_, err = svc.Create(context.Background(), userID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetDefaultMovesFlag(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), userID, sampleRequest("Rua B"))
	require.NoError(t, err)

	updated, err := svc.SetDefault(context.Background(), userID, second.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := svc.Get(context.Background(), userID, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
	assert.Equal(t, 1, countDefaults(t, svc, userID))
}

func TestUpdateRequiresFieldsAndOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	a, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), userID, a.ID, UpdateAddressRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	city := "Campinas"
	_, err = svc.Update(context.Background(), uuid.New(), a.ID, UpdateAddressRequest{City: &city})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	updated, err := svc.Update(context.Background(), userID, a.ID, UpdateAddressRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Campinas", updated.City)
}

func TestDeleteOnlyDefaultIsRejected(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	a, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), userID, a.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestDeleteDefaultPromotesRemaining(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	first, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), userID, sampleRequest("Rua B"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, first.ID))

	remaining, err := svc.Get(context.Background(), userID, second.ID)
	require.NoError(t, err)
	assert.True(t, remaining.IsDefault)

	_, err = svc.Get(context.Background(), userID, first.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteNonDefault(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, sampleRequest("Rua A"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), userID, sampleRequest("Rua B"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, second.ID))
	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
