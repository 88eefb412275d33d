package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository persists each cart as one row holding the serialized
// ordered item list, the server-side counterpart of the old localStorage
// "cart" key.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartModel struct {
	OwnerKey  string    `gorm:"column:owner_key;primaryKey"`
	Items     string    `gorm:"column:items;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartModel) TableName() string { return "carts" }

// Load returns the serialized item list, or nil when no cart is stored.
func (r *CartRepository) Load(ctx context.Context, ownerKey string) ([]byte, error) {
	var m cartModel
	err := r.db.WithContext(ctx).First(&m, "owner_key = ?", ownerKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(m.Items), nil
}

// Save upserts the full serialized sequence for the owner.
func (r *CartRepository) Save(ctx context.Context, ownerKey string, items []byte) error {
	m := cartModel{OwnerKey: ownerKey, Items: string(items), UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&m).Error
}

func (r *CartRepository) Delete(ctx context.Context, ownerKey string) error {
	return r.db.WithContext(ctx).Delete(&cartModel{}, "owner_key = ?", ownerKey).Error
}
