package repository

import (
	"context"
	"errors"
	"strings"

	"karam/internal/domain"

	"gorm.io/gorm"
)

// ErrCodeExhausted is returned when a redemption races past a code's usage
// cap.
var ErrCodeExhausted = errors.New("discount code has no uses left")

type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var d domain.DiscountCode
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// IncrementUse consumes one redemption. The usage cap is enforced inside the
// UPDATE itself, so concurrent check-then-redeem flows cannot push used_count
// past max_uses; the loser gets ErrCodeExhausted.
func (r *DiscountRepository) IncrementUse(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.DiscountCode{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrCodeExhausted
	}
	return nil
}

func (r *DiscountRepository) Create(ctx context.Context, d *domain.DiscountCode) error {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	return r.db.WithContext(ctx).Create(d).Error
}
