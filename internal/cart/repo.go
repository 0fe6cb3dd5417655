package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository persists carts and their lines.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindOrCreate returns the user's cart, inserting an empty one when missing.
func (r *Repository) FindOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	fresh := &models.Cart{ID: uuid.New(), UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Omit("Items").
		Create(fresh).Error; err != nil {
		return nil, err
	}
	var c models.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadWithItems loads the cart with variants and products, oldest line first.
func (r *Repository) LoadWithItems(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC").Order("id ASC") }).
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		Where("id = ?", cartID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) VariantExists(ctx context.Context, variantID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProductVariant{}).Where("id = ?", variantID).Count(&n).Error
	return n > 0, err
}

// AddQuantity inserts a line or increments the existing line for the same variant.
func (r *Repository) AddQuantity(ctx context.Context, cartID, variantID uuid.UUID, quantity int, now time.Time) (*models.CartItem, error) {
	item := &models.CartItem{
		ID:               uuid.New(),
		CartID:           cartID,
		ProductVariantID: variantID,
		Quantity:         quantity,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_variant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": now,
			}),
		}).
		Omit("Variant").
		Create(item).Error
	if err != nil {
		return nil, err
	}
	return r.FindItemByVariant(ctx, cartID, variantID)
}

func (r *Repository) FindItemByVariant(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Variant.Product").
		Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemForUser loads a line only when it sits in userID's cart.
func (r *Repository) FindItemForUser(ctx context.Context, itemID, userID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Variant.Product").
		Where("cart_items.id = ? AND cart_items.cart_id IN (SELECT c.id FROM carts c WHERE c.user_id = ?)", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// Clear removes every line of userID's cart and returns how many were removed.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("cart_id IN (SELECT c.id FROM carts c WHERE c.user_id = ?)", userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
