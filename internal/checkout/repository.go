package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository reads checkout inputs and writes the resulting order.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// AddressOwnedBy reports whether addressID belongs to userID.
func (r *Repository) AddressOwnedBy(ctx context.Context, addressID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&n).Error
	return n > 0, err
}

// VariantsByID loads the variants with their products, keyed by variant ID.
func (r *Repository) VariantsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error) {
	var rows []models.ProductVariant
	if err := r.db.WithContext(ctx).Preload("Product").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]models.ProductVariant, len(rows))
	for _, v := range rows {
		out[v.ID] = v
	}
	return out, nil
}

// InsertOrder writes the header then its items. Callers run it inside a transaction.
func (r *Repository) InsertOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if err := r.db.WithContext(ctx).Omit("User", "Address", "Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
