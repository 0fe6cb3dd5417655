package products

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
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

type fixture struct {
	svc  Service
	db   *gorm.DB
	gpus models.Category
	ram  models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	f := &fixture{svc: svc, db: conn}
	f.gpus = models.Category{ID: uuid.New(), Name: "Placas de Vídeo", Slug: "placas-de-video"}
	f.ram = models.Category{ID: uuid.New(), Name: "Memória RAM", Slug: "memoria-ram"}
	require.NoError(t, conn.Create(&f.gpus).Error)
	require.NoError(t, conn.Create(&f.ram).Error)
	return f
}

func (f *fixture) product(t *testing.T, category models.Category, name, brand string, prices ...int) *ProductDetailDTO {
	t.Helper()
	p, err := f.svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:        name,
		Description: name + " description",
		CategoryID:  category.ID,
		Brand:       strPtr(brand),
	})
	require.NoError(t, err)
	for i, price := range prices {
		_, err := f.svc.CreateVariant(context.Background(), p.ID, CreateVariantRequest{
			Name:         name + " variant",
			Color:        []string{"Preto", "Branco", "Azul"}[i%3],
			PriceInCents: price,
			ImageURL:     "https://cdn.example.com/" + p.Slug + ".png",
		})
		require.NoError(t, err)
	}
	return p
}

func TestCreateProductSlugIsUnique(t *testing.T) {
	f := newFixture(t)
	first := f.product(t, f.gpus, "RTX 4060", "NVIDIA")
	second := f.product(t, f.gpus, "RTX 4060", "NVIDIA")
	third := f.product(t, f.gpus, "RTX 4060", "NVIDIA")

	assert.Equal(t, "rtx-4060", first.Slug)
	assert.Equal(t, "rtx-4060-1", second.Slug)
	assert.Equal(t, "rtx-4060-2", third.Slug)
}

func TestCreateProductRequiresExistingCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:        "Ghost",
		Description: "none",
		CategoryID:  uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetBySlugOrdersVariantsByPrice(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, f.ram, "Fury Beast DDR5", "Kingston", 45000, 29900, 61000)

	detail, err := f.svc.GetBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	require.Len(t, detail.Variants, 3)
	assert.Equal(t, 29900, detail.Variants[0].PriceInCents)
	assert.Equal(t, 61000, detail.Variants[2].PriceInCents)
	assert.Equal(t, PriceRange{Min: 29900, Max: 61000}, detail.PriceRange)
	assert.Equal(t, 3, detail.VariantCount)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "memoria-ram", detail.Category.Slug)

	_, err = f.svc.GetBySlug(context.Background(), "nope")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersAndFacets(t *testing.T) {
	f := newFixture(t)
	f.product(t, f.gpus, "RTX 4060", "NVIDIA", 199900)
	f.product(t, f.gpus, "RX 7600", "AMD", 159900, 169900)
	f.product(t, f.ram, "Fury Beast DDR5 16GB", "Kingston", 39900)

	page := pagination.Params{Limit: 10}

	byCategory, err := f.svc.List(context.Background(), ListFilters{CategorySlug: "placas-de-video"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byCategory.Pagination.Total)

	byBrand, err := f.svc.List(context.Background(), ListFilters{Brands: []string{"AMD", "Kingston"}}, page)
	require.NoError(t, err)
	assert.Len(t, byBrand.Products, 2)

	byPrice, err := f.svc.List(context.Background(), ListFilters{MinPrice: intPtr(150000), MaxPrice: intPtr(180000)}, page)
	require.NoError(t, err)
	require.Len(t, byPrice.Products, 1)
	assert.Equal(t, "RX 7600", byPrice.Products[0].Name)

	bySearch, err := f.svc.List(context.Background(), ListFilters{Search: "fury"}, page)
	require.NoError(t, err)
	require.Len(t, bySearch.Products, 1)

	byCapacity, err := f.svc.List(context.Background(), ListFilters{Capacities: []string{"16gb"}}, page)
	require.NoError(t, err)
	require.Len(t, byCapacity.Products, 1)

	sorted, err := f.svc.List(context.Background(), ListFilters{Sort: SortPriceAsc}, page)
	require.NoError(t, err)
	require.Len(t, sorted.Products, 3)
	assert.Equal(t, "Fury Beast DDR5 16GB", sorted.Products[0].Name)
	assert.Equal(t, "RTX 4060", sorted.Products[2].Name)

	require.NotNil(t, sorted.Filters)
	assert.Equal(t, PriceRange{Min: 39900, Max: 199900}, sorted.Filters.PriceRange)
	assert.Len(t, sorted.Filters.Brands, 3)
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C"} {
		f.product(t, f.gpus, "Produto "+name, "Marca", 1000)
	}

	res, err := f.svc.List(context.Background(), ListFilters{Sort: SortNameAsc}, pagination.Params{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Produto C", res.Products[0].Name)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestRelatedExcludesSelf(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, f.gpus, "RTX 4060", "NVIDIA", 1000)
	f.product(t, f.gpus, "RX 7600", "AMD", 1000)
	f.product(t, f.ram, "Fury", "Kingston", 1000)

	related, err := f.svc.Related(context.Background(), a.ID, 0)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "RX 7600", related[0].Name)
}

func TestUpdateProductReslugsOnNameChange(t *testing.T) {
	f := newFixture(t)
	f.product(t, f.gpus, "RTX 4070", "NVIDIA")
	p := f.product(t, f.gpus, "RTX 4060", "NVIDIA")

	updated, err := f.svc.UpdateProduct(context.Background(), p.ID, UpdateProductRequest{Name: strPtr("RTX 4070")})
	require.NoError(t, err)
	assert.Equal(t, "rtx-4070-1", updated.Slug)

	_, err = f.svc.UpdateProduct(context.Background(), p.ID, UpdateProductRequest{})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteProductWithVariantsIsRejected(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, f.gpus, "RTX 4060", "NVIDIA", 1000)

	err := f.svc.DeleteProduct(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	detail, err := f.svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteVariant(context.Background(), detail.Variants[0].ID))
	require.NoError(t, f.svc.DeleteProduct(context.Background(), p.ID))
}

func TestVariantValidationAndReslug(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, f.ram, "Fury", "Kingston")

	_, err := f.svc.CreateVariant(context.Background(), p.ID, CreateVariantRequest{
		Name: "16GB", Color: "Preto", PriceInCents: 0, ImageURL: "https://cdn.example.com/x.png",
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.CreateVariant(context.Background(), uuid.New(), CreateVariantRequest{
		Name: "16GB", Color: "Preto", PriceInCents: 100, ImageURL: "https://cdn.example.com/x.png",
	})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	v, err := f.svc.CreateVariant(context.Background(), p.ID, CreateVariantRequest{
		Name: "16GB", Color: "Preto", PriceInCents: 29900, ImageURL: "https://cdn.example.com/x.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "16gb-preto", v.Slug)

	_, err = f.svc.UpdateVariant(context.Background(), v.ID, UpdateVariantRequest{})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	updated, err := f.svc.UpdateVariant(context.Background(), v.ID, UpdateVariantRequest{Color: strPtr("Branco")})
	require.NoError(t, err)
	assert.Equal(t, "16gb-branco", updated.Slug)

	repriced, err := f.svc.UpdateVariant(context.Background(), v.ID, UpdateVariantRequest{PriceInCents: intPtr(31900)})
	require.NoError(t, err)
	assert.Equal(t, "16gb-branco", repriced.Slug)
	assert.Equal(t, 31900, repriced.PriceInCents)
}
