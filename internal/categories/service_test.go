package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, categoryID uuid.UUID, slug string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Product{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        slug,
		Slug:        slug,
		Description: "desc",
	}).Error)
}

func TestCreateDerivesSlugAndRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "  Memória RAM "})
	require.NoError(t, err)
	assert.Equal(t, "Memória RAM", created.Name)
	assert.Equal(t, "memoria-ram", created.Slug)

	_, err = svc.Create(context.Background(), UpsertCategoryRequest{Name: "memoria ram"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateRejectsShortName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: " a "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListWithProductCount(t *testing.T) {
	svc, conn := newTestService(t)
	gpus, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "Placas de Vídeo"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), UpsertCategoryRequest{Name: "Armazenamento"})
	require.NoError(t, err)
	seedProduct(t, conn, gpus.ID, "rtx-4060")
	seedProduct(t, conn, gpus.ID, "rx-7600")

	list, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Armazenamento", list[0].Name)
	require.NotNil(t, list[1].ProductCount)
	assert.Equal(t, int64(2), *list[1].ProductCount)

	plain, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Nil(t, plain[0].ProductCount)
}

func TestGetBySlug(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "Monitores"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(context.Background(), "monitores")
	require.NoError(t, err)
	assert.Equal(t, int64(0), *got.ProductCount)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateReslugs(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), UpsertCategoryRequest{Name: "Mouses"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), c.ID, UpsertCategoryRequest{Name: "Teclados Mecânicos"})
	require.NoError(t, err)
	assert.Equal(t, "teclados-mecanicos", updated.Slug)

	same, err := svc.Update(context.Background(), c.ID, UpsertCategoryRequest{Name: "Teclados Mecânicos"})
	require.NoError(t, err)
	assert.Equal(t, updated.Slug, same.Slug)

	_, err = svc.Update(context.Background(), c.ID, UpsertCategoryRequest{Name: "Mouses"})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeleteRejectedWithProducts(t *testing.T) {
	svc, conn := newTestService(t)
	c, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "Fontes"})
	require.NoError(t, err)
	seedProduct(t, conn, c.ID, "fonte-650w")

	err = svc.Delete(context.Background(), c.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	empty, err := svc.Create(context.Background(), UpsertCategoryRequest{Name: "Cabos"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), empty.ID))

	err = svc.Delete(context.Background(), empty.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
