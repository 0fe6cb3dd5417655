package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const (
	minVariantPrice = "(SELECT MIN(v.price_in_cents) FROM product_variants v WHERE v.product_id = products.id)"
	maxVariantPrice = "(SELECT MAX(v.price_in_cents) FROM product_variants v WHERE v.product_id = products.id)"
)

// Repository wires together product and variant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func variantsByPrice(db *gorm.DB) *gorm.DB {
	return db.Order("price_in_cents ASC").Order("id ASC")
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Variants", variantsByPrice)
}

// FindByID loads a product with its category and variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.withRelations(ctx).Where("products.id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.withRelations(ctx).Where("products.slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List applies filters, returns one page and the filtered total.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Product, int64, error) {
	scope := filterScope(filters)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Product
	q := r.withRelations(ctx).Model(&models.Product{}).Scopes(scope)
	for _, clause := range orderClauses(normalizeSort(filters.Sort)) {
		q = q.Order(clause)
	}
	if err := q.Limit(page.Limit).Offset(page.Offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Related returns up to limit products sharing categoryID, excluding excludeID.
func (r *Repository) Related(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	var out []models.Product
	err := r.withRelations(ctx).
		Where("products.category_id = ? AND products.id <> ?", categoryID, excludeID).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// BrandFacets counts products per brand, most common first.
func (r *Repository) BrandFacets(ctx context.Context, limit int) ([]BrandFacet, error) {
	var out []BrandFacet
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// GlobalPriceRange spans every variant in the catalog.
func (r *Repository) GlobalPriceRange(ctx context.Context) (PriceRange, error) {
	var pr PriceRange
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Select("COALESCE(MIN(price_in_cents), 0) AS min, COALESCE(MAX(price_in_cents), 0) AS max").
		Scan(&pr).Error
	return pr, err
}

func (r *Repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *Repository) ProductSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return r.slugTaken(ctx, &models.Product{}, slug, exclude)
}

func (r *Repository) VariantSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return r.slugTaken(ctx, &models.ProductVariant{}, slug, exclude)
}

func (r *Repository) slugTaken(ctx context.Context, model any, slug string, exclude uuid.UUID) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *Repository) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Category", "Variants").Create(p).Error
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields(r.db.WithContext(ctx).Model(&models.Product{}), id, fields)
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *Repository) CountVariants(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// FindVariantsWithProduct loads the given variants with their parent product.
func (r *Repository) FindVariantsWithProduct(ctx context.Context, ids []uuid.UUID) ([]models.ProductVariant, error) {
	var out []models.ProductVariant
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Preload("Product").Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *Repository) CreateVariant(ctx context.Context, v *models.ProductVariant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Product").Create(v).Error
}

func (r *Repository) UpdateVariant(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateFields(r.db.WithContext(ctx).Model(&models.ProductVariant{}), id, fields)
}

func (r *Repository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductVariant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func updateFields(q *gorm.DB, id uuid.UUID, fields map[string]any) error {
	res := q.Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func filterScope(f ListFilters) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.CategoryID != nil {
			q = q.Where("products.category_id = ?", *f.CategoryID)
		}
		if f.CategorySlug != "" {
			q = q.Where("products.category_id IN (SELECT c.id FROM categories c WHERE c.slug = ?)", f.CategorySlug)
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			q = q.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", pattern, pattern)
		}
		if len(f.Brands) > 0 {
			q = q.Where("products.brand IN ?", f.Brands)
		}
		if f.MinPrice != nil {
			q = q.Where(minVariantPrice+" >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			q = q.Where(maxVariantPrice+" <= ?", *f.MaxPrice)
		}
		if clause, args := variantTextMatch(f.Capacities); clause != "" {
			q = q.Where(clause, args...)
		}
		if clause, args := variantTextMatch(f.MemoryTypes); clause != "" {
			q = q.Where(clause, args...)
		}
		return q
	}
}

// variantTextMatch builds an EXISTS clause matching any term against a variant's name or color.
func variantTextMatch(terms []string) (string, []any) {
	if len(terms) == 0 {
		return "", nil
	}
	ors := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2)
	for _, term := range terms {
		pattern := "%" + strings.ToLower(term) + "%"
		ors = append(ors, "LOWER(v.name) LIKE ? OR LOWER(v.color) LIKE ?")
		args = append(args, pattern, pattern)
	}
	clause := "EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND (" +
		strings.Join(ors, " OR ") + "))"
	return clause, args
}

func orderClauses(sort string) []string {
	switch sort {
	case SortPriceAsc:
		return []string{"COALESCE(" + minVariantPrice + ", 0) ASC", "products.id ASC"}
	case SortPriceDesc:
		return []string{"COALESCE(" + minVariantPrice + ", 0) DESC", "products.id ASC"}
	case SortNameAsc:
		return []string{"products.name ASC", "products.id ASC"}
	case SortNameDesc:
		return []string{"products.name DESC", "products.id ASC"}
	case SortCreatedAtAsc:
		return []string{"products.created_at ASC", "products.id ASC"}
	default:
		return []string{"products.created_at DESC", "products.id DESC"}
	}
}
